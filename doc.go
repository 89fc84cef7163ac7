/*
Package milsym renders military map symbols (MIL-STD-2525 style symbology) as raster images.

A symbol is composed from layered image assets: a fill, a frame and an icon. The layers of
a symbol identifier are resolved by a SymbolSet, loaded from a Store (a directory, a zip archive
or a web server), recolored and composited on top of each other.

The package provides a command line interface. To check the supported commands type:

	$ milsym --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"image/color"

		"github.com/esimov/milsym"
	)

	func main() {
		loader := milsym.NewLoader(milsym.DirStore("./assets"), milsym.DefaultBasePath)
		renderer := milsym.NewRenderer(loader, milsym.MilStd2525{})

		svc := milsym.NewService(renderer).
			WithShowFill(true).
			WithFillColor(color.NRGBA{R: 255, A: 255})

		if err := svc.WriteFile("SHGPUCI--------", "hostile.png"); err != nil {
			fmt.Printf("Error rendering symbol: %s", err.Error())
		}
	}
*/
package milsym
