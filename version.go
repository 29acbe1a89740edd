package lang

// Version is the release version of the calculator toolkit.
const Version = "0.3.1"
