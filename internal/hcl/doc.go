// Package hcl provides the HCL implementation of the config.Loader and
// config.Converter interfaces. It parses scene files, translates them into
// the format-agnostic model and binds component arguments to Go structs.
package hcl
