// Command compasvalidate is the CLI wrapper around the gate package: it
// parses flags into runconfig.Config, dispatches to gate.Validate or
// gate.Describe, and renders the schema-v3 result as json or yaml.
package main

func main() {
	Execute()
}
