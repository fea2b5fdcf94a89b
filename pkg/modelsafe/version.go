package modelsafe

// Version is the modelsafe library version.
const Version = "0.1.0"
