package sift

// Version is the library release version.
// Overridable at build time: -ldflags "-X github.com/aretw0/sift.Version=x.y.z".
var Version = "0.1.0"
