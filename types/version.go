package types

// Version is the canonical project version.
// The CLI, the UI subprocess, and the handoff document share this version.
const Version = "0.2.0"
