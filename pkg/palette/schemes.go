package palette

// Scheme describes a named color scheme.
type Scheme struct {
	Name string

	// Size is the number of discrete colors of a qualitative scheme, zero
	// for continuous colormaps.
	Size int

	// Skip lists sample indices dropped from a qualitative scheme.
	Skip []int

	// Extension names the scheme that supplies extra colors once the
	// base colors run out.
	Extension string

	cmap Colormap

	// forward is the unreversed colormap of an "_r" scheme.
	forward Colormap
}

// Qualitative reports whether the scheme is a fixed set of categorical
// colors.
func (s Scheme) Qualitative() bool { return s.Size > 0 }

// Colormap returns the underlying continuous or listed colormap.
func (s Scheme) Colormap() Colormap { return s.cmap }

func qualitative(name string, skip []int, ext string, codes ...string) Scheme {
	return Scheme{Name: name, Size: len(codes), Skip: skip, Extension: ext, cmap: listed(hexColors(codes...))}
}

func continuous(name string, anchors ...string) Scheme {
	return Scheme{Name: name, cmap: segmented(hexColors(anchors...))}
}

// tab20Grey is the mid grey of tab20, indistinguishable from the fallback
// color of unannotated nodes.
const tab20Grey = 14

var schemes = map[string]Scheme{}

func register(s Scheme) { schemes[s.Name] = s }

func init() {
	// ColorBrewer qualitative sets
	register(qualitative("Accent", nil, "",
		"7fc97f", "beaed4", "fdc086", "ffff99", "386cb0", "f0027f", "bf5b17", "666666"))
	register(qualitative("Dark2", nil, "",
		"1b9e77", "d95f02", "7570b3", "e7298a", "66a61e", "e6ab02", "a6761d", "666666"))
	register(qualitative("Paired", nil, "",
		"a6cee3", "1f78b4", "b2df8a", "33a02c", "fb9a99", "e31a1c",
		"fdbf6f", "ff7f00", "cab2d6", "6a3d9a", "ffff99", "b15928"))
	register(qualitative("Pastel1", nil, "",
		"fbb4ae", "b3cde3", "ccebc5", "decbe4", "fed9a6", "ffffcc", "e5d8bd", "fddaec", "f2f2f2"))
	register(qualitative("Pastel2", nil, "",
		"b3e2cd", "fdcdac", "cbd5e8", "f4cae4", "e6f5c9", "fff2ae", "f1e2cc", "cccccc"))
	register(qualitative("Set1", nil, "",
		"e41a1c", "377eb8", "4daf4a", "984ea3", "ff7f00", "ffff33", "a65628", "f781bf", "999999"))
	register(qualitative("Set2", nil, "",
		"66c2a5", "fc8d62", "8da0cb", "e78ac3", "a6d854", "ffd92f", "e5c494", "b3b3b3"))
	register(qualitative("Set3", nil, "",
		"8dd3c7", "ffffb3", "bebada", "fb8072", "80b1d3", "fdb462",
		"b3de69", "fccde5", "d9d9d9", "bc80bd", "ccebc5", "ffed6f"))

	// Tableau sets
	register(qualitative("tab10", nil, "",
		"1f77b4", "ff7f0e", "2ca02c", "d62728", "9467bd", "8c564b", "e377c2", "7f7f7f", "bcbd22", "17becf"))
	register(qualitative("tab20", []int{tab20Grey}, "tab20b",
		"1f77b4", "aec7e8", "ff7f0e", "ffbb78", "2ca02c", "98df8a", "d62728", "ff9896", "9467bd", "c5b0d5",
		"8c564b", "c49c94", "e377c2", "f7b6d2", "7f7f7f", "c7c7c7", "bcbd22", "dbdb8d", "17becf", "9edae5"))
	register(qualitative("tab20b", nil, "",
		"393b79", "5254a3", "6b6ecf", "9c9ede", "637939", "8ca252", "b5cf6b", "cedb9c", "8c6d31", "bd9e39",
		"e7ba52", "e7cb94", "843c39", "ad494a", "d6616b", "e7969c", "7b4173", "a55194", "ce6dbd", "de9ed6"))
	register(qualitative("tab20c", nil, "",
		"3182bd", "6baed6", "9ecae1", "c6dbef", "e6550d", "fd8d3c", "fdae6b", "fdd0a2", "31a354", "74c476",
		"a1d99b", "c7e9c0", "756bb1", "9e9ac8", "bcbddc", "dadaeb", "636363", "969696", "bdbdbd", "d9d9d9"))

	// Perceptually uniform maps
	register(continuous("viridis",
		"440154", "482878", "3e4989", "31688e", "26828e", "1f9e89", "35b779", "6ece58", "b5de2b", "fde725"))
	register(continuous("plasma",
		"0d0887", "41049d", "6a00a8", "8f0da4", "b12a90", "cc4778", "e16462", "f2844b", "fca636", "fcce25", "f0f921"))
	register(continuous("inferno",
		"000004", "1b0c41", "4a0c6b", "781c6d", "a52c60", "cf4446", "ed6925", "fb9b06", "f7d13d", "fcffa4"))
	register(continuous("magma",
		"000004", "180f3d", "440f76", "721f81", "9e2f7f", "cd4071", "f1605d", "fd9668", "feca8d", "fcfdbf"))
	register(continuous("cividis",
		"00224e", "123570", "3b496c", "575d6d", "707173", "8a8779", "a69d75", "c4b56c", "e4cf5b", "fee838"))

	// Sequential
	register(continuous("Greys",
		"ffffff", "f0f0f0", "d9d9d9", "bdbdbd", "969696", "737373", "525252", "252525", "000000"))
	register(continuous("Blues",
		"f7fbff", "deebf7", "c6dbef", "9ecae1", "6baed6", "4292c6", "2171b5", "08519c", "08306b"))
	register(continuous("Greens",
		"f7fcf5", "e5f5e0", "c7e9c0", "a1d99b", "74c476", "41ab5d", "238b45", "006d2c", "00441b"))
	register(continuous("Reds",
		"fff5f0", "fee0d2", "fcbba1", "fc9272", "fb6a4a", "ef3b2c", "cb181d", "a50f15", "67000d"))

	// Diverging and legacy
	register(continuous("coolwarm",
		"3b4cc0", "6f92f3", "aac7fd", "dddcdc", "f7b89c", "e7745b", "b40426"))
	register(continuous("jet",
		"00007f", "0000ff", "007fff", "00ffff", "7fff7f", "ffff00", "ff7f00", "ff0000", "7f0000"))
}
