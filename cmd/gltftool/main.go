// gltftool is a CLI utility for inspecting glTF and GLB files.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/Faultbox/gltfview/pkg/gltf"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "meshes", "ls":
		cmdMeshes(args)
	case "materials", "mat":
		cmdMaterials(args)
	case "nodes":
		cmdNodes(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gltftool - glTF 2.0 inspection utility

Usage:
  gltftool <command> [options]

Commands:
  info <file>        Show document summary
  meshes <file>      List resolved meshes with vertex and index counts
  materials <file>   List materials with factors and texture sources
  nodes <file>       List the scene node hierarchy

Examples:
  gltftool info model.glb
  gltftool meshes scene.gltf
  gltftool materials -v model.glb`)
}

func open(path string) *gltf.Session {
	sess, err := gltf.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return sess
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gltftool info <file>")
		os.Exit(1)
	}

	sess := open(args[0])
	doc := sess.Doc

	fmt.Printf("File:       %s\n", args[0])
	fmt.Printf("Asset:      glTF %s", doc.Asset.Version)
	if doc.Asset.Generator != "" {
		fmt.Printf(" (%s)", doc.Asset.Generator)
	}
	fmt.Println()

	var bufferBytes int
	for _, b := range sess.Buffers {
		bufferBytes += len(b)
	}

	fmt.Printf("Scenes:     %d\n", len(doc.Scenes))
	fmt.Printf("Nodes:      %d\n", len(doc.Nodes))
	fmt.Printf("Meshes:     %d\n", len(doc.Meshes))
	fmt.Printf("Materials:  %d\n", len(doc.Materials))
	fmt.Printf("Textures:   %d\n", len(doc.Textures))
	fmt.Printf("Accessors:  %d\n", len(doc.Accessors))
	fmt.Printf("Buffers:    %d (%.2f MB loaded)\n", len(doc.Buffers), float64(bufferBytes)/(1024*1024))

	// Accessor component type histogram.
	compCount := make(map[int]int)
	for _, a := range doc.Accessors {
		compCount[a.ComponentType]++
	}
	if len(compCount) > 0 {
		fmt.Println()
		fmt.Println("Accessors by component type:")
		var types []int
		for t := range compCount {
			types = append(types, t)
		}
		sort.Ints(types)
		for _, t := range types {
			fmt.Printf("  %-6d %d\n", t, compCount[t])
		}
	}
}

func cmdMeshes(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gltftool meshes <file>")
		os.Exit(1)
	}

	sess := open(args[0])
	meshes, errs := sess.ResolveMeshes()

	for _, m := range meshes {
		name := m.Name
		if name == "" {
			name = "(unnamed)"
		}
		indexed := "unindexed"
		if m.Indices != nil {
			indexed = fmt.Sprintf("%d indices (%s)", m.Indices.Count, m.Indices.Format)
		}
		tangents := "document"
		if m.TangentsSynthesized {
			tangents = "synthesized"
		} else if m.Streams.Tangent == nil {
			tangents = "none"
		}
		fmt.Printf("%-24s %6d vertices  %-24s tangents: %s\n", name, m.VertexCount, indexed, tangents)
	}

	for i := range sess.Doc.Meshes {
		if n := len(sess.Doc.Meshes[i].Primitives); n > 1 {
			fmt.Fprintf(os.Stderr, "note: mesh %d has %d primitives, only the first is resolved\n", i, n)
		}
	}
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "skipped: %v\n", err)
	}
	if len(meshes) == 0 && len(errs) == 0 {
		fmt.Fprintln(os.Stderr, "No meshes in default scene")
	}
}

func cmdMaterials(args []string) {
	fs := flag.NewFlagSet("materials", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show texture details")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gltftool materials [-v] <file>")
		os.Exit(1)
	}

	sess := open(fs.Arg(0))

	for i := range sess.Doc.Materials {
		mat, err := sess.ResolveMaterial(i)
		if err != nil {
			fmt.Fprintf(os.Stderr, "material %d: %v\n", i, err)
			continue
		}
		name := mat.Name
		if name == "" {
			name = fmt.Sprintf("material %d", i)
		}
		fmt.Printf("%-24s base=%v metallic=%.2f roughness=%.2f", name,
			mat.BaseColorFactor, mat.MetallicFactor, mat.RoughnessFactor)
		if mat.DoubleSided {
			fmt.Print(" doubleSided")
		}
		fmt.Println()

		if *verbose {
			printTexture("  baseColor", mat.BaseColor)
			printTexture("  metallicRoughness", mat.MetallicRoughness)
			printTexture("  normal", mat.Normal)
		}
	}
}

func printTexture(label string, r *gltf.TextureRange) {
	if r == nil {
		return
	}
	if r.URI != "" {
		fmt.Printf("%-20s uri=%s\n", label, r.URI)
		return
	}
	fmt.Printf("%-20s buffer=%d offset=%d length=%d mime=%s\n", label, r.Buffer, r.Offset, r.Length, r.MIME)
}

func cmdNodes(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gltftool nodes <file>")
		os.Exit(1)
	}

	sess := open(args[0])
	doc := sess.Doc

	sceneIdx, ok := doc.DefaultScene()
	if !ok {
		fmt.Fprintln(os.Stderr, "Document has no scenes")
		os.Exit(1)
	}

	var walk func(ni, depth int)
	walk = func(ni, depth int) {
		if ni < 0 || ni >= len(doc.Nodes) {
			return
		}
		node := &doc.Nodes[ni]
		name := node.Name
		if name == "" {
			name = fmt.Sprintf("node %d", ni)
		}
		for i := 0; i < depth; i++ {
			fmt.Print("  ")
		}
		fmt.Print(name)
		if node.Mesh != nil {
			fmt.Printf(" [mesh %d]", *node.Mesh)
		}
		if node.Matrix != nil {
			fmt.Print(" (matrix)")
		}
		fmt.Println()
		for _, child := range node.Children {
			walk(child, depth+1)
		}
	}

	for _, root := range doc.Scenes[sceneIdx].Nodes {
		walk(root, 0)
	}
}
