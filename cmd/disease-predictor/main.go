// Command disease-predictor routes clinical parameters to pre-trained
// disease classifiers.
package main

import "github.com/disease-predictor/internal/cli"

func main() {
	cli.Execute()
}
