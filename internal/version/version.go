package version

// Version is the current release of website-monitor
const Version = "1.0.0"
