package cli

// Version is the eggir release version.
const Version = "0.1.0"
