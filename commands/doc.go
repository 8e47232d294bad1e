// Package commands defines the truescale CLI.
//
// Commands
//
//   - render     Render the true-scale preview to PNG, SVG or PDF
//   - calibrate  Render the calibration sheet and print the reference sizes
//   - export     Export the typographic settings as JSON, text or .proof source
//   - geometry   Print the computed layout as JSON
//   - serve      Start the HTTP preview server
//
// Every command starts from the default document, applies the .proof file given
// by --in, binds --data into the frame contents and finally applies --ppi.
// Environment variables from the config package provide the defaults for the
// persistent flags.
package commands
