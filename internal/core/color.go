package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	// Synthwave palette
	ColorSkyTop     // deep navy at the top of the sky
	ColorSkyMid     // indigo
	ColorSkyLow     // violet
	ColorSkyHorizon // hot pink glow near the horizon
	ColorCityBase   // near-black building body
	ColorNeonCyan
	ColorNeonPink
	ColorNeonOrange
	ColorGridLine // magenta perspective grid
	ColorGridGlow // dim purple halo
	ColorTrail    // fading ball trail
	ColorStar
	ColorStarDim
)

// SkyGradient lists the sky colors from top to horizon.
var SkyGradient = []Color{ColorSkyTop, ColorSkyMid, ColorSkyLow, ColorSkyHorizon}
