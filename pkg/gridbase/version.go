package gridbase

const Version = "0.1.0"
