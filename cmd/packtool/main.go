// packtool is a CLI utility for inspecting resource packs and the asset
// resolution pipeline.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/SilverlightStudios/voxelpack/internal/assets"
	"github.com/SilverlightStudios/voxelpack/internal/composite"
	"github.com/SilverlightStudios/voxelpack/internal/config"
	"github.com/SilverlightStudios/voxelpack/internal/geometry"
	"github.com/SilverlightStudios/voxelpack/internal/logger"
	"github.com/SilverlightStudios/voxelpack/internal/resolve"
	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	switch command {
	case "winners":
		cmdWinners(cfg, log, args)
	case "resolve":
		cmdResolve(cfg, log, args)
	case "geometry", "geo":
		cmdGeometry(cfg, log, args)
	case "composite":
		cmdComposite(cfg, log, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`packtool - resource pack resolution utility

Usage:
  packtool <command> [options]

Commands:
  winners <packdir>...                     Show which pack wins each asset
  resolve <packdir>... <block> [k=v...]    Resolve a block state to its model
  geometry <packdir>... <block> [k=v...]   Compute geometry for a block state
  composite <packdir>... <texture-id>      Show an entity's composite schema

Pack directories are listed lowest priority first; later packs override
earlier ones for the assets they both provide.

Examples:
  packtool winners ./packs/base ./packs/overrides
  packtool resolve ./packs/base minecraft:furnace facing=north
  packtool geometry ./packs/base minecraft:stone
  packtool composite ./packs/base minecraft:entity/horse/horse_brown`)
}

// loadPacks splits args into pack directories (leading args that exist as
// directories) and the remainder, and builds the catalog from them.
func loadPacks(log *zap.Logger, args []string) (*assets.Catalog, []assets.PackID, []string, error) {
	c := assets.NewCatalog()
	var order []assets.PackID
	rest := args

	for len(rest) > 0 {
		info, err := os.Stat(rest[0])
		if err != nil || !info.IsDir() {
			break
		}
		dir := rest[0]
		rest = rest[1:]

		pack := assets.PackID(filepath.Base(dir))
		if err := c.AddPack(assets.Pack{ID: pack, Name: dir}); err != nil {
			return nil, nil, nil, err
		}
		n, err := assets.LoadDir(c, pack, dir)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("loaded pack", zap.String("pack", string(pack)), zap.Int("assets", n))
		order = append(order, pack)
	}

	if len(order) == 0 {
		return nil, nil, nil, fmt.Errorf("no pack directories given")
	}
	return c, order, rest, nil
}

func parseProps(args []string) map[string]string {
	props := map[string]string{}
	for _, arg := range args {
		if k, v, ok := strings.Cut(arg, "="); ok {
			props[k] = v
		}
	}
	return props
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdWinners(cfg *config.Config, log *zap.Logger, args []string) {
	c, order, _, err := loadPacks(log, args)
	if err != nil {
		fatal(err)
	}

	winners := assets.ResolveWinners(c, order)

	refs := make([]assets.Ref, 0, len(winners))
	for ref := range winners {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].String() < refs[j].String() })

	for _, ref := range refs {
		fmt.Printf("%-60s %s\n", ref, winners[ref])
	}
	fmt.Printf("\n%d assets across %d packs\n", len(refs), len(order))
}

func cmdResolve(cfg *config.Config, log *zap.Logger, args []string) {
	c, order, rest, err := loadPacks(log, args)
	if err != nil {
		fatal(err)
	}
	if len(rest) < 1 {
		fatal(fmt.Errorf("usage: packtool resolve <packdir>... <block> [k=v...]"))
	}
	block, err := assetid.Parse(rest[0])
	if err != nil {
		fatal(err)
	}
	props := parseProps(rest[1:])

	m, err := resolve.New(c, order).ResolveBlockState(block, props, cfg.Packs.Seed)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Block: %s\n", m.Block)
	for i, part := range m.Parts {
		fmt.Printf("\nPart %d: %s\n", i, part.Model)
		if part.Rotation != (resolve.Rotation{}) {
			fmt.Printf("  rotation: x=%d y=%d z=%d uvlock=%v\n",
				part.Rotation.X, part.Rotation.Y, part.Rotation.Z, part.Rotation.UVLock)
		}
		fmt.Printf("  elements: %d\n", len(part.Elements))
		names := make([]string, 0, len(part.Textures))
		for name := range part.Textures {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  #%s -> %s\n", name, part.Textures[name])
		}
		for name, ref := range part.Unresolved {
			fmt.Printf("  #%s -> %s (unresolved)\n", name, ref)
		}
	}
	if err := m.UnresolvedErr(); err != nil {
		fmt.Printf("\nWarning: %v\n", err)
	}
}

func cmdGeometry(cfg *config.Config, log *zap.Logger, args []string) {
	c, order, rest, err := loadPacks(log, args)
	if err != nil {
		fatal(err)
	}
	if len(rest) < 1 {
		fatal(fmt.Errorf("usage: packtool geometry <packdir>... <block> [k=v...]"))
	}
	block, err := assetid.Parse(rest[0])
	if err != nil {
		fatal(err)
	}
	props := parseProps(rest[1:])

	m, err := resolve.New(c, order).ResolveBlockState(block, props, cfg.Packs.Seed)
	if err != nil {
		fatal(err)
	}
	buf := geometry.ComputeModel(m, nil)

	fmt.Printf("Block:     %s\n", m.Block)
	fmt.Printf("Vertices:  %d\n", buf.VertexCount())
	fmt.Printf("Triangles: %d\n", buf.TriangleCount())
	fmt.Printf("Groups:    %d\n", len(buf.Groups))
	for _, g := range buf.Groups {
		fmt.Printf("  %-6s %-40s indices %d..%d\n",
			g.Direction, g.Texture, g.IndexOffset, g.IndexOffset+g.IndexCount)
	}
	for _, f := range buf.Faults {
		fmt.Printf("  fault: element %d: %v\n", f.Element, f.Err)
	}
}

func cmdComposite(cfg *config.Config, log *zap.Logger, args []string) {
	c, _, rest, err := loadPacks(log, args)
	if err != nil {
		fatal(err)
	}
	if len(rest) < 1 {
		fatal(fmt.Errorf("usage: packtool composite <packdir>... <texture-id>"))
	}
	id, err := assetid.Parse(rest[0])
	if err != nil {
		fatal(err)
	}

	schema := composite.Resolve(id, c)
	if schema == nil {
		fmt.Printf("%s: plain entity, no composite schema\n", id)
		return
	}

	fmt.Printf("Base:   %s\n", schema.Base)
	fmt.Printf("Family: %s\n", schema.Family)
	fmt.Println("Controls:")
	for _, ctl := range schema.Controls {
		switch ctl.Kind {
		case composite.ControlToggle:
			fmt.Printf("  %-10s toggle  default=%s\n", ctl.ID, ctl.Default)
		case composite.ControlSelect:
			fmt.Printf("  %-10s select  default=%s  options=%s\n",
				ctl.ID, ctl.Default, strings.Join(ctl.Options, ","))
		}
	}
	fmt.Println("Default layers:")
	for _, layer := range schema.Layers(nil) {
		kind := "texture"
		if layer.Kind == composite.GeometryOverlay {
			kind = "geometry"
		}
		fmt.Printf("  z=%-3d %-8s %s\n", layer.ZIndex, kind, layer.Texture)
	}
}
