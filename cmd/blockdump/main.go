// Command blockdump inspects a PDF for rectangular vector blocks from
// the command line. It prints the candidate table for a page and can
// export every candidate region as SVG without the GUI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/stat"

	"pdf-blocks/internal/block"
	"pdf-blocks/internal/document"
	"pdf-blocks/internal/svg"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	page := flag.Int("page", 0, "zero-based page number")
	all := flag.Bool("all", false, "process every page")
	out := flag.String("out", "", "directory to export candidate SVGs into")
	minSize := flag.Float64("min-size", 0, "override minimum block side length")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file.pdf\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	doc, err := document.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	defer doc.Close()

	opts := block.DefaultOptions()
	if *minSize > 0 {
		opts.MinSize = *minSize
	}

	pages := []int{*page}
	if *all {
		pages = pages[:0]
		for i := 0; i < doc.NumPages(); i++ {
			pages = append(pages, i)
		}
	}

	exitCode := 0
	multi := len(pages) > 1
	for _, pageNo := range pages {
		if err := dumpPage(doc, pageNo, opts, exportDir(*out, pageNo, multi)); err != nil {
			log.Printf("page %d: %v", pageNo+1, err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

// exportDir returns the directory for one page's SVGs. With multiple
// pages each gets a page_<n> subdirectory, since block numbering
// restarts on every page and the files would otherwise collide.
func exportDir(base string, pageNo int, multi bool) string {
	if base == "" || !multi {
		return base
	}
	return filepath.Join(base, fmt.Sprintf("page_%d", pageNo+1))
}

func dumpPage(doc *document.Document, pageNo int, opts block.Options, outDir string) error {
	p, err := doc.Page(pageNo)
	if err != nil {
		return err
	}

	blocks := block.Detect(p.Drawings, opts)
	fmt.Printf("page %d: %.0fx%.0f pt, %d drawings, %d candidate blocks\n",
		pageNo+1, p.Width, p.Height, len(p.Drawings), len(blocks))

	for _, b := range blocks {
		fmt.Printf("  #%-3d (%8.2f, %8.2f) - (%8.2f, %8.2f)  %7.1f x %-7.1f area %10.1f\n",
			b.Index+1, b.BBox.X0, b.BBox.Y0, b.BBox.X1, b.BBox.Y1,
			b.BBox.Width(), b.BBox.Height(), b.BBox.Area())
	}
	printAreaStats(blocks)

	if outDir == "" || len(blocks) == 0 {
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	sel := block.NewSelection()
	for _, b := range blocks {
		sel.Toggle(b.Index)
	}
	var failed int
	for _, res := range svg.ExportBlocks(outDir, sel, blocks, p.Drawings) {
		if res.Err != nil {
			log.Printf("  export block %d: %v", res.Index+1, res.Err)
			failed++
		} else {
			fmt.Printf("  wrote %s\n", res.Path)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d exports failed", failed, len(blocks))
	}
	return nil
}

// printAreaStats summarizes the area distribution of the candidates,
// which is handy for tuning the size filters on unfamiliar documents.
func printAreaStats(blocks []block.Block) {
	if len(blocks) < 2 {
		return
	}

	areas := make([]float64, len(blocks))
	for i, b := range blocks {
		areas[i] = b.BBox.Area()
	}
	sort.Float64s(areas)

	mean, std := stat.MeanStdDev(areas, nil)
	median := stat.Quantile(0.5, stat.Empirical, areas, nil)
	fmt.Printf("  area: mean %.1f, stddev %.1f, median %.1f, min %.1f, max %.1f\n",
		mean, std, median, areas[0], areas[len(areas)-1])
}
