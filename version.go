package conduit

// Version is the library version, surfaced by the CLI.
const Version = "0.1.0"
