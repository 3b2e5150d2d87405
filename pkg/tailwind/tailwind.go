// Package tailwind maps raw design values onto Tailwind CSS utility class names.
package tailwind

// ColorMatcher finds the utility color class closest to a hex color.
type ColorMatcher interface {
	ClosestColor(hex string) string
}

// ColorPlaceholder is returned by Placeholder for every color.
const ColorPlaceholder = "tailwind-color-placeholder"

// Placeholder is the current ColorMatcher. Nearest-color matching against the
// Tailwind palette is not implemented yet; every input maps to ColorPlaceholder.
type Placeholder struct{}

// ClosestColor returns the placeholder class for every input.
func (Placeholder) ClosestColor(hex string) string {
	return ColorPlaceholder
}

type threshold struct {
	max   float64
	class string
}

var fontSizes = []threshold{
	{12, "text-xs"},
	{14, "text-sm"},
	{16, "text-base"},
	{18, "text-lg"},
	{20, "text-xl"},
	{24, "text-2xl"},
	{30, "text-3xl"},
	{36, "text-4xl"},
	{48, "text-5xl"},
}

// FontSize maps a pixel font size to a text-* class. Thresholds are inclusive.
func FontSize(px float64) string {
	for _, t := range fontSizes {
		if px <= t.max {
			return t.class
		}
	}
	return "text-6xl"
}

// spacingScale is keyed by rem ceiling.
var spacingScale = []threshold{
	{0.25, "p-0.5 or m-0.5"},
	{0.5, "p-1 or m-1"},
	{0.75, "p-1.5 or m-1.5"},
	{1, "p-2 or m-2"},
	{1.5, "p-3 or m-3"},
	{2, "p-4 or m-4"},
	{2.5, "p-5 or m-5"},
	{3, "p-6 or m-6"},
	{3.5, "p-7 or m-7"},
	{4, "p-8 or m-8"},
	{5, "p-10 or m-10"},
	{6, "p-12 or m-12"},
	{8, "p-16 or m-16"},
	{10, "p-20 or m-20"},
	{12, "p-24 or m-24"},
	{14, "p-28 or m-28"},
	{16, "p-32 or m-32"},
}

// CustomSpacing is returned for spacing beyond the default scale.
const CustomSpacing = "custom"

// Spacing maps a pixel gap to a padding/margin class pair, assuming a 16px root.
func Spacing(px int) string {
	rem := float64(px) / 16
	for _, t := range spacingScale {
		if rem <= t.max {
			return t.class
		}
	}
	return CustomSpacing
}
