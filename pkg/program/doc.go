// Package program defines the declarative form program consumed by the
// interpreter: an ordered list of field descriptors decoded from JSON or YAML.
// Loaders resolve programs from files, fs.FS entries, in-memory payloads or
// HTTP endpoints. The `allowEmpty` and `defaultValue` descriptor keys are
// decoded and preserved so programs round-trip, but the interpreter does not
// act on them unless explicitly asked to.
package program
