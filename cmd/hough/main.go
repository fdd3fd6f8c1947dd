// Command hough runs the Hough line-detection pipeline on image files.
package main

import "github.com/ironsheep/hough-lines/internal/cli"

func main() {
	cli.Execute()
}
