package pixdesc

var descriptors = [...]Descriptor{
	{
		Name:         "yuv420p",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 1, 0, 0, 8, 0, 7, 1}, // U
			{2, 1, 0, 0, 8, 0, 7, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuyv422",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 8, 1, 7, 1}, // Y
			{0, 4, 1, 0, 8, 3, 7, 2}, // U
			{0, 4, 3, 0, 8, 3, 7, 4}, // V
		},
	},
	{
		Name:         "yvyu422",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 8, 1, 7, 1}, // Y
			{0, 4, 3, 0, 8, 3, 7, 4}, // U
			{0, 4, 1, 0, 8, 3, 7, 2}, // V
		},
	},
	{
		Name:         "rgb24",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 3, 0, 0, 8, 2, 7, 1}, // R
			{0, 3, 1, 0, 8, 2, 7, 2}, // G
			{0, 3, 2, 0, 8, 2, 7, 3}, // B
		},
		Flags: FlagRGB,
	},
	{
		Name:         "bgr24",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 3, 2, 0, 8, 2, 7, 3}, // R
			{0, 3, 1, 0, 8, 2, 7, 2}, // G
			{0, 3, 0, 0, 8, 2, 7, 1}, // B
		},
		Flags: FlagRGB,
	},
	{
		Name:         "yuv422p",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 1, 0, 0, 8, 0, 7, 1}, // U
			{2, 1, 0, 0, 8, 0, 7, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv444p",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 1, 0, 0, 8, 0, 7, 1}, // U
			{2, 1, 0, 0, 8, 0, 7, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv410p",
		NbComponents: 3,
		Log2ChromaW:  2,
		Log2ChromaH:  2,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 1, 0, 0, 8, 0, 7, 1}, // U
			{2, 1, 0, 0, 8, 0, 7, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv411p",
		NbComponents: 3,
		Log2ChromaW:  2,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 1, 0, 0, 8, 0, 7, 1}, // U
			{2, 1, 0, 0, 8, 0, 7, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuvj411p",
		NbComponents: 3,
		Log2ChromaW:  2,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 1, 0, 0, 8, 0, 7, 1}, // U
			{2, 1, 0, 0, 8, 0, 7, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "gray",
		NbComponents: 1,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
		},
		Flags: FlagPseudoPal,
		Alias: "gray8,y8",
	},
	{
		Name:         "monow",
		NbComponents: 1,
		Comp: [4]Component{
			{0, 1, 0, 0, 1, 0, 0, 1}, // Y
		},
		Flags: FlagBitstream,
	},
	{
		Name:         "monob",
		NbComponents: 1,
		Comp: [4]Component{
			{0, 1, 0, 7, 1, 0, 0, 1}, // Y
		},
		Flags: FlagBitstream,
	},
	{
		Name:         "pal8",
		NbComponents: 1,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1},
		},
		Flags: FlagPAL,
	},
	{
		Name:         "yuvj420p",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 1, 0, 0, 8, 0, 7, 1}, // U
			{2, 1, 0, 0, 8, 0, 7, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuvj422p",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 1, 0, 0, 8, 0, 7, 1}, // U
			{2, 1, 0, 0, 8, 0, 7, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuvj444p",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 1, 0, 0, 8, 0, 7, 1}, // U
			{2, 1, 0, 0, 8, 0, 7, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:  "xvmc",
		Flags: FlagHWAccel,
	},
	{
		Name:         "uyvy422",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 1, 0, 8, 1, 7, 2}, // Y
			{0, 4, 0, 0, 8, 3, 7, 1}, // U
			{0, 4, 2, 0, 8, 3, 7, 3}, // V
		},
	},
	{
		Name:         "uyyvyy411",
		NbComponents: 3,
		Log2ChromaW:  2,
		Comp: [4]Component{
			{0, 4, 1, 0, 8, 3, 7, 2}, // Y
			{0, 6, 0, 0, 8, 5, 7, 1}, // U
			{0, 6, 3, 0, 8, 5, 7, 4}, // V
		},
	},
	{
		Name:         "bgr8",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 1, 0, 0, 3, 0, 2, 1}, // R
			{0, 1, 0, 3, 3, 0, 2, 1}, // G
			{0, 1, 0, 6, 2, 0, 1, 1}, // B
		},
		Flags: FlagRGB | FlagPseudoPal,
	},
	{
		Name:         "bgr4",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 4, 3, 0, 1, 3, 0, 4}, // R
			{0, 4, 1, 0, 2, 3, 1, 2}, // G
			{0, 4, 0, 0, 1, 3, 0, 1}, // B
		},
		Flags: FlagBitstream | FlagRGB,
	},
	{
		Name:         "bgr4_byte",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 1, 0, 0, 1, 0, 0, 1}, // R
			{0, 1, 0, 1, 2, 0, 1, 1}, // G
			{0, 1, 0, 3, 1, 0, 0, 1}, // B
		},
		Flags: FlagRGB | FlagPseudoPal,
	},
	{
		Name:         "rgb8",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 1, 0, 6, 2, 0, 1, 1}, // R
			{0, 1, 0, 3, 3, 0, 2, 1}, // G
			{0, 1, 0, 0, 3, 0, 2, 1}, // B
		},
		Flags: FlagRGB | FlagPseudoPal,
	},
	{
		Name:         "rgb4",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 4, 0, 0, 1, 3, 0, 1}, // R
			{0, 4, 1, 0, 2, 3, 1, 2}, // G
			{0, 4, 3, 0, 1, 3, 0, 4}, // B
		},
		Flags: FlagBitstream | FlagRGB,
	},
	{
		Name:         "rgb4_byte",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 1, 0, 3, 1, 0, 0, 1}, // R
			{0, 1, 0, 1, 2, 0, 1, 1}, // G
			{0, 1, 0, 0, 1, 0, 0, 1}, // B
		},
		Flags: FlagRGB | FlagPseudoPal,
	},
	{
		Name:         "nv12",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 2, 0, 0, 8, 1, 7, 1}, // U
			{1, 2, 1, 0, 8, 1, 7, 2}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "nv21",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 2, 1, 0, 8, 1, 7, 2}, // U
			{1, 2, 0, 0, 8, 1, 7, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "argb",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 4, 1, 0, 8, 3, 7, 2}, // R
			{0, 4, 2, 0, 8, 3, 7, 3}, // G
			{0, 4, 3, 0, 8, 3, 7, 4}, // B
			{0, 4, 0, 0, 8, 3, 7, 1}, // A
		},
		Flags: FlagRGB | FlagAlpha,
	},
	{
		Name:         "rgba",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 4, 0, 0, 8, 3, 7, 1}, // R
			{0, 4, 1, 0, 8, 3, 7, 2}, // G
			{0, 4, 2, 0, 8, 3, 7, 3}, // B
			{0, 4, 3, 0, 8, 3, 7, 4}, // A
		},
		Flags: FlagRGB | FlagAlpha,
	},
	{
		Name:         "abgr",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 4, 3, 0, 8, 3, 7, 4}, // R
			{0, 4, 2, 0, 8, 3, 7, 3}, // G
			{0, 4, 1, 0, 8, 3, 7, 2}, // B
			{0, 4, 0, 0, 8, 3, 7, 1}, // A
		},
		Flags: FlagRGB | FlagAlpha,
	},
	{
		Name:         "bgra",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 4, 2, 0, 8, 3, 7, 3}, // R
			{0, 4, 1, 0, 8, 3, 7, 2}, // G
			{0, 4, 0, 0, 8, 3, 7, 1}, // B
			{0, 4, 3, 0, 8, 3, 7, 4}, // A
		},
		Flags: FlagRGB | FlagAlpha,
	},
	{
		Name:         "0rgb",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 4, 1, 0, 8, 3, 7, 2}, // R
			{0, 4, 2, 0, 8, 3, 7, 3}, // G
			{0, 4, 3, 0, 8, 3, 7, 4}, // B
		},
		Flags: FlagRGB,
	},
	{
		Name:         "rgb0",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 4, 0, 0, 8, 3, 7, 1}, // R
			{0, 4, 1, 0, 8, 3, 7, 2}, // G
			{0, 4, 2, 0, 8, 3, 7, 3}, // B
		},
		Flags: FlagRGB,
	},
	{
		Name:         "0bgr",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 4, 3, 0, 8, 3, 7, 4}, // R
			{0, 4, 2, 0, 8, 3, 7, 3}, // G
			{0, 4, 1, 0, 8, 3, 7, 2}, // B
		},
		Flags: FlagRGB,
	},
	{
		Name:         "bgr0",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 4, 2, 0, 8, 3, 7, 3}, // R
			{0, 4, 1, 0, 8, 3, 7, 2}, // G
			{0, 4, 0, 0, 8, 3, 7, 1}, // B
		},
		Flags: FlagRGB,
	},
	{
		Name:         "gray9be",
		NbComponents: 1,
		Comp: [4]Component{
			{0, 2, 0, 0, 9, 1, 8, 1}, // Y
		},
		Flags: FlagBE,
		Alias: "y9be",
	},
	{
		Name:         "gray9le",
		NbComponents: 1,
		Comp: [4]Component{
			{0, 2, 0, 0, 9, 1, 8, 1}, // Y
		},
		Alias: "y9le",
	},
	{
		Name:         "gray10be",
		NbComponents: 1,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
		},
		Flags: FlagBE,
		Alias: "y10be",
	},
	{
		Name:         "gray10le",
		NbComponents: 1,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
		},
		Alias: "y10le",
	},
	{
		Name:         "gray12be",
		NbComponents: 1,
		Comp: [4]Component{
			{0, 2, 0, 0, 12, 1, 11, 1}, // Y
		},
		Flags: FlagBE,
		Alias: "y12be",
	},
	{
		Name:         "gray12le",
		NbComponents: 1,
		Comp: [4]Component{
			{0, 2, 0, 0, 12, 1, 11, 1}, // Y
		},
		Alias: "y12le",
	},
	{
		Name:         "gray16be",
		NbComponents: 1,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
		},
		Flags: FlagBE,
		Alias: "y16be",
	},
	{
		Name:         "gray16le",
		NbComponents: 1,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
		},
		Alias: "y16le",
	},
	{
		Name:         "yuv440p",
		NbComponents: 3,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 1, 0, 0, 8, 0, 7, 1}, // U
			{2, 1, 0, 0, 8, 0, 7, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuvj440p",
		NbComponents: 3,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 1, 0, 0, 8, 0, 7, 1}, // U
			{2, 1, 0, 0, 8, 0, 7, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv440p10le",
		NbComponents: 3,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 2, 0, 0, 10, 1, 9, 1}, // U
			{2, 2, 0, 0, 10, 1, 9, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv440p10be",
		NbComponents: 3,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 2, 0, 0, 10, 1, 9, 1}, // U
			{2, 2, 0, 0, 10, 1, 9, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv440p12le",
		NbComponents: 3,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 12, 1, 11, 1}, // Y
			{1, 2, 0, 0, 12, 1, 11, 1}, // U
			{2, 2, 0, 0, 12, 1, 11, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv440p12be",
		NbComponents: 3,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 12, 1, 11, 1}, // Y
			{1, 2, 0, 0, 12, 1, 11, 1}, // U
			{2, 2, 0, 0, 12, 1, 11, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuva420p",
		NbComponents: 4,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 1, 0, 0, 8, 0, 7, 1}, // U
			{2, 1, 0, 0, 8, 0, 7, 1}, // V
			{3, 1, 0, 0, 8, 0, 7, 1}, // A
		},
		Flags: FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva422p",
		NbComponents: 4,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 1, 0, 0, 8, 0, 7, 1}, // U
			{2, 1, 0, 0, 8, 0, 7, 1}, // V
			{3, 1, 0, 0, 8, 0, 7, 1}, // A
		},
		Flags: FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva444p",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 1, 0, 0, 8, 0, 7, 1}, // U
			{2, 1, 0, 0, 8, 0, 7, 1}, // V
			{3, 1, 0, 0, 8, 0, 7, 1}, // A
		},
		Flags: FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva420p9be",
		NbComponents: 4,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 9, 1, 8, 1}, // Y
			{1, 2, 0, 0, 9, 1, 8, 1}, // U
			{2, 2, 0, 0, 9, 1, 8, 1}, // V
			{3, 2, 0, 0, 9, 1, 8, 1}, // A
		},
		Flags: FlagBE | FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva420p9le",
		NbComponents: 4,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 9, 1, 8, 1}, // Y
			{1, 2, 0, 0, 9, 1, 8, 1}, // U
			{2, 2, 0, 0, 9, 1, 8, 1}, // V
			{3, 2, 0, 0, 9, 1, 8, 1}, // A
		},
		Flags: FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva422p9be",
		NbComponents: 4,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 9, 1, 8, 1}, // Y
			{1, 2, 0, 0, 9, 1, 8, 1}, // U
			{2, 2, 0, 0, 9, 1, 8, 1}, // V
			{3, 2, 0, 0, 9, 1, 8, 1}, // A
		},
		Flags: FlagBE | FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva422p9le",
		NbComponents: 4,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 9, 1, 8, 1}, // Y
			{1, 2, 0, 0, 9, 1, 8, 1}, // U
			{2, 2, 0, 0, 9, 1, 8, 1}, // V
			{3, 2, 0, 0, 9, 1, 8, 1}, // A
		},
		Flags: FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva444p9be",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 2, 0, 0, 9, 1, 8, 1}, // Y
			{1, 2, 0, 0, 9, 1, 8, 1}, // U
			{2, 2, 0, 0, 9, 1, 8, 1}, // V
			{3, 2, 0, 0, 9, 1, 8, 1}, // A
		},
		Flags: FlagBE | FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva444p9le",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 2, 0, 0, 9, 1, 8, 1}, // Y
			{1, 2, 0, 0, 9, 1, 8, 1}, // U
			{2, 2, 0, 0, 9, 1, 8, 1}, // V
			{3, 2, 0, 0, 9, 1, 8, 1}, // A
		},
		Flags: FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva420p10be",
		NbComponents: 4,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 2, 0, 0, 10, 1, 9, 1}, // U
			{2, 2, 0, 0, 10, 1, 9, 1}, // V
			{3, 2, 0, 0, 10, 1, 9, 1}, // A
		},
		Flags: FlagBE | FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva420p10le",
		NbComponents: 4,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 2, 0, 0, 10, 1, 9, 1}, // U
			{2, 2, 0, 0, 10, 1, 9, 1}, // V
			{3, 2, 0, 0, 10, 1, 9, 1}, // A
		},
		Flags: FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva422p10be",
		NbComponents: 4,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 2, 0, 0, 10, 1, 9, 1}, // U
			{2, 2, 0, 0, 10, 1, 9, 1}, // V
			{3, 2, 0, 0, 10, 1, 9, 1}, // A
		},
		Flags: FlagBE | FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva422p10le",
		NbComponents: 4,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 2, 0, 0, 10, 1, 9, 1}, // U
			{2, 2, 0, 0, 10, 1, 9, 1}, // V
			{3, 2, 0, 0, 10, 1, 9, 1}, // A
		},
		Flags: FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva444p10be",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 2, 0, 0, 10, 1, 9, 1}, // U
			{2, 2, 0, 0, 10, 1, 9, 1}, // V
			{3, 2, 0, 0, 10, 1, 9, 1}, // A
		},
		Flags: FlagBE | FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva444p10le",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 2, 0, 0, 10, 1, 9, 1}, // U
			{2, 2, 0, 0, 10, 1, 9, 1}, // V
			{3, 2, 0, 0, 10, 1, 9, 1}, // A
		},
		Flags: FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva420p16be",
		NbComponents: 4,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
			{1, 2, 0, 0, 16, 1, 15, 1}, // U
			{2, 2, 0, 0, 16, 1, 15, 1}, // V
			{3, 2, 0, 0, 16, 1, 15, 1}, // A
		},
		Flags: FlagBE | FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva420p16le",
		NbComponents: 4,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
			{1, 2, 0, 0, 16, 1, 15, 1}, // U
			{2, 2, 0, 0, 16, 1, 15, 1}, // V
			{3, 2, 0, 0, 16, 1, 15, 1}, // A
		},
		Flags: FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva422p16be",
		NbComponents: 4,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
			{1, 2, 0, 0, 16, 1, 15, 1}, // U
			{2, 2, 0, 0, 16, 1, 15, 1}, // V
			{3, 2, 0, 0, 16, 1, 15, 1}, // A
		},
		Flags: FlagBE | FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva422p16le",
		NbComponents: 4,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
			{1, 2, 0, 0, 16, 1, 15, 1}, // U
			{2, 2, 0, 0, 16, 1, 15, 1}, // V
			{3, 2, 0, 0, 16, 1, 15, 1}, // A
		},
		Flags: FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva444p16be",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
			{1, 2, 0, 0, 16, 1, 15, 1}, // U
			{2, 2, 0, 0, 16, 1, 15, 1}, // V
			{3, 2, 0, 0, 16, 1, 15, 1}, // A
		},
		Flags: FlagBE | FlagPlanar | FlagAlpha,
	},
	{
		Name:         "yuva444p16le",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
			{1, 2, 0, 0, 16, 1, 15, 1}, // U
			{2, 2, 0, 0, 16, 1, 15, 1}, // V
			{3, 2, 0, 0, 16, 1, 15, 1}, // A
		},
		Flags: FlagPlanar | FlagAlpha,
	},
	{
		Name:         "rgb48be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 6, 0, 0, 16, 5, 15, 1}, // R
			{0, 6, 2, 0, 16, 5, 15, 3}, // G
			{0, 6, 4, 0, 16, 5, 15, 5}, // B
		},
		Flags: FlagRGB | FlagBE,
	},
	{
		Name:         "rgb48le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 6, 0, 0, 16, 5, 15, 1}, // R
			{0, 6, 2, 0, 16, 5, 15, 3}, // G
			{0, 6, 4, 0, 16, 5, 15, 5}, // B
		},
		Flags: FlagRGB,
	},
	{
		Name:         "rgba64be",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 8, 0, 0, 16, 7, 15, 1}, // R
			{0, 8, 2, 0, 16, 7, 15, 3}, // G
			{0, 8, 4, 0, 16, 7, 15, 5}, // B
			{0, 8, 6, 0, 16, 7, 15, 7}, // A
		},
		Flags: FlagBE | FlagRGB | FlagAlpha,
	},
	{
		Name:         "rgba64le",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 8, 0, 0, 16, 7, 15, 1}, // R
			{0, 8, 2, 0, 16, 7, 15, 3}, // G
			{0, 8, 4, 0, 16, 7, 15, 5}, // B
			{0, 8, 6, 0, 16, 7, 15, 7}, // A
		},
		Flags: FlagRGB | FlagAlpha,
	},
	{
		Name:         "rgb565be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, -1, 3, 5, 1, 4, 0}, // R
			{0, 2, 0, 5, 6, 1, 5, 1},  // G
			{0, 2, 0, 0, 5, 1, 4, 1},  // B
		},
		Flags: FlagBE | FlagRGB,
	},
	{
		Name:         "rgb565le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 1, 3, 5, 1, 4, 2}, // R
			{0, 2, 0, 5, 6, 1, 5, 1}, // G
			{0, 2, 0, 0, 5, 1, 4, 1}, // B
		},
		Flags: FlagRGB,
	},
	{
		Name:         "rgb555be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, -1, 2, 5, 1, 4, 0}, // R
			{0, 2, 0, 5, 5, 1, 4, 1},  // G
			{0, 2, 0, 0, 5, 1, 4, 1},  // B
		},
		Flags: FlagBE | FlagRGB,
	},
	{
		Name:         "rgb555le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 1, 2, 5, 1, 4, 2}, // R
			{0, 2, 0, 5, 5, 1, 4, 1}, // G
			{0, 2, 0, 0, 5, 1, 4, 1}, // B
		},
		Flags: FlagRGB,
	},
	{
		Name:         "rgb444be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, -1, 0, 4, 1, 3, 0}, // R
			{0, 2, 0, 4, 4, 1, 3, 1},  // G
			{0, 2, 0, 0, 4, 1, 3, 1},  // B
		},
		Flags: FlagBE | FlagRGB,
	},
	{
		Name:         "rgb444le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 1, 0, 4, 1, 3, 2}, // R
			{0, 2, 0, 4, 4, 1, 3, 1}, // G
			{0, 2, 0, 0, 4, 1, 3, 1}, // B
		},
		Flags: FlagRGB,
	},
	{
		Name:         "bgr48be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 6, 4, 0, 16, 5, 15, 5}, // R
			{0, 6, 2, 0, 16, 5, 15, 3}, // G
			{0, 6, 0, 0, 16, 5, 15, 1}, // B
		},
		Flags: FlagBE | FlagRGB,
	},
	{
		Name:         "bgr48le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 6, 4, 0, 16, 5, 15, 5}, // R
			{0, 6, 2, 0, 16, 5, 15, 3}, // G
			{0, 6, 0, 0, 16, 5, 15, 1}, // B
		},
		Flags: FlagRGB,
	},
	{
		Name:         "bgra64be",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 8, 4, 0, 16, 7, 15, 5}, // R
			{0, 8, 2, 0, 16, 7, 15, 3}, // G
			{0, 8, 0, 0, 16, 7, 15, 1}, // B
			{0, 8, 6, 0, 16, 7, 15, 7}, // A
		},
		Flags: FlagBE | FlagRGB | FlagAlpha,
	},
	{
		Name:         "bgra64le",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 8, 4, 0, 16, 7, 15, 5}, // R
			{0, 8, 2, 0, 16, 7, 15, 3}, // G
			{0, 8, 0, 0, 16, 7, 15, 1}, // B
			{0, 8, 6, 0, 16, 7, 15, 7}, // A
		},
		Flags: FlagRGB | FlagAlpha,
	},
	{
		Name:         "bgr565be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 5, 1, 4, 1},  // R
			{0, 2, 0, 5, 6, 1, 5, 1},  // G
			{0, 2, -1, 3, 5, 1, 4, 0}, // B
		},
		Flags: FlagBE | FlagRGB,
	},
	{
		Name:         "bgr565le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 5, 1, 4, 1}, // R
			{0, 2, 0, 5, 6, 1, 5, 1}, // G
			{0, 2, 1, 3, 5, 1, 4, 2}, // B
		},
		Flags: FlagRGB,
	},
	{
		Name:         "bgr555be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 5, 1, 4, 1},  // R
			{0, 2, 0, 5, 5, 1, 4, 1},  // G
			{0, 2, -1, 2, 5, 1, 4, 0}, // B
		},
		Flags: FlagBE | FlagRGB,
	},
	{
		Name:         "bgr555le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 5, 1, 4, 1}, // R
			{0, 2, 0, 5, 5, 1, 4, 1}, // G
			{0, 2, 1, 2, 5, 1, 4, 2}, // B
		},
		Flags: FlagRGB,
	},
	{
		Name:         "bgr444be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 4, 1, 3, 1},  // R
			{0, 2, 0, 4, 4, 1, 3, 1},  // G
			{0, 2, -1, 0, 4, 1, 3, 0}, // B
		},
		Flags: FlagBE | FlagRGB,
	},
	{
		Name:         "bgr444le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 4, 1, 3, 1}, // R
			{0, 2, 0, 4, 4, 1, 3, 1}, // G
			{0, 2, 1, 0, 4, 1, 3, 2}, // B
		},
		Flags: FlagRGB,
	},
	{
		Name:        "vaapi",
		Log2ChromaW: 1,
		Log2ChromaH: 1,
		Flags:       FlagHWAccel,
	},
	{
		Name:         "yuv420p9le",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 9, 1, 8, 1}, // Y
			{1, 2, 0, 0, 9, 1, 8, 1}, // U
			{2, 2, 0, 0, 9, 1, 8, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv420p9be",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 9, 1, 8, 1}, // Y
			{1, 2, 0, 0, 9, 1, 8, 1}, // U
			{2, 2, 0, 0, 9, 1, 8, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv420p10le",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 2, 0, 0, 10, 1, 9, 1}, // U
			{2, 2, 0, 0, 10, 1, 9, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv420p10be",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 2, 0, 0, 10, 1, 9, 1}, // U
			{2, 2, 0, 0, 10, 1, 9, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv420p12le",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 12, 1, 11, 1}, // Y
			{1, 2, 0, 0, 12, 1, 11, 1}, // U
			{2, 2, 0, 0, 12, 1, 11, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv420p12be",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 12, 1, 11, 1}, // Y
			{1, 2, 0, 0, 12, 1, 11, 1}, // U
			{2, 2, 0, 0, 12, 1, 11, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv420p14le",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 14, 1, 13, 1}, // Y
			{1, 2, 0, 0, 14, 1, 13, 1}, // U
			{2, 2, 0, 0, 14, 1, 13, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv420p14be",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 14, 1, 13, 1}, // Y
			{1, 2, 0, 0, 14, 1, 13, 1}, // U
			{2, 2, 0, 0, 14, 1, 13, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv420p16le",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
			{1, 2, 0, 0, 16, 1, 15, 1}, // U
			{2, 2, 0, 0, 16, 1, 15, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv420p16be",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
			{1, 2, 0, 0, 16, 1, 15, 1}, // U
			{2, 2, 0, 0, 16, 1, 15, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv422p9le",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 9, 1, 8, 1}, // Y
			{1, 2, 0, 0, 9, 1, 8, 1}, // U
			{2, 2, 0, 0, 9, 1, 8, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv422p9be",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 9, 1, 8, 1}, // Y
			{1, 2, 0, 0, 9, 1, 8, 1}, // U
			{2, 2, 0, 0, 9, 1, 8, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv422p10le",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 2, 0, 0, 10, 1, 9, 1}, // U
			{2, 2, 0, 0, 10, 1, 9, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv422p10be",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 2, 0, 0, 10, 1, 9, 1}, // U
			{2, 2, 0, 0, 10, 1, 9, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv422p12le",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 12, 1, 11, 1}, // Y
			{1, 2, 0, 0, 12, 1, 11, 1}, // U
			{2, 2, 0, 0, 12, 1, 11, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv422p12be",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 12, 1, 11, 1}, // Y
			{1, 2, 0, 0, 12, 1, 11, 1}, // U
			{2, 2, 0, 0, 12, 1, 11, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv422p14le",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 14, 1, 13, 1}, // Y
			{1, 2, 0, 0, 14, 1, 13, 1}, // U
			{2, 2, 0, 0, 14, 1, 13, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv422p14be",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 14, 1, 13, 1}, // Y
			{1, 2, 0, 0, 14, 1, 13, 1}, // U
			{2, 2, 0, 0, 14, 1, 13, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv422p16le",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
			{1, 2, 0, 0, 16, 1, 15, 1}, // U
			{2, 2, 0, 0, 16, 1, 15, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv422p16be",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
			{1, 2, 0, 0, 16, 1, 15, 1}, // U
			{2, 2, 0, 0, 16, 1, 15, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv444p16le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
			{1, 2, 0, 0, 16, 1, 15, 1}, // U
			{2, 2, 0, 0, 16, 1, 15, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv444p16be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
			{1, 2, 0, 0, 16, 1, 15, 1}, // U
			{2, 2, 0, 0, 16, 1, 15, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv444p10le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 2, 0, 0, 10, 1, 9, 1}, // U
			{2, 2, 0, 0, 10, 1, 9, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv444p10be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 2, 0, 0, 10, 1, 9, 1}, // U
			{2, 2, 0, 0, 10, 1, 9, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv444p9le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 9, 1, 8, 1}, // Y
			{1, 2, 0, 0, 9, 1, 8, 1}, // U
			{2, 2, 0, 0, 9, 1, 8, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv444p9be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 9, 1, 8, 1}, // Y
			{1, 2, 0, 0, 9, 1, 8, 1}, // U
			{2, 2, 0, 0, 9, 1, 8, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv444p12le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 12, 1, 11, 1}, // Y
			{1, 2, 0, 0, 12, 1, 11, 1}, // U
			{2, 2, 0, 0, 12, 1, 11, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv444p12be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 12, 1, 11, 1}, // Y
			{1, 2, 0, 0, 12, 1, 11, 1}, // U
			{2, 2, 0, 0, 12, 1, 11, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:         "yuv444p14le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 14, 1, 13, 1}, // Y
			{1, 2, 0, 0, 14, 1, 13, 1}, // U
			{2, 2, 0, 0, 14, 1, 13, 1}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "yuv444p14be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 14, 1, 13, 1}, // Y
			{1, 2, 0, 0, 14, 1, 13, 1}, // U
			{2, 2, 0, 0, 14, 1, 13, 1}, // V
		},
		Flags: FlagBE | FlagPlanar,
	},
	{
		Name:        "d3d11va_vld",
		Log2ChromaW: 1,
		Log2ChromaH: 1,
		Flags:       FlagHWAccel,
	},
	{
		Name:        "dxva2_vld",
		Log2ChromaW: 1,
		Log2ChromaH: 1,
		Flags:       FlagHWAccel,
	},
	{
		Name:        "vda_vld",
		Log2ChromaW: 1,
		Log2ChromaH: 1,
		Flags:       FlagHWAccel,
	},
	{
		Name:         "ya8",
		NbComponents: 2,
		Comp: [4]Component{
			{0, 2, 0, 0, 8, 1, 7, 1}, // Y
			{0, 2, 1, 0, 8, 1, 7, 2}, // A
		},
		Flags: FlagAlpha,
		Alias: "gray8a",
	},
	{
		Name:         "ya16le",
		NbComponents: 2,
		Comp: [4]Component{
			{0, 4, 0, 0, 16, 3, 15, 1}, // Y
			{0, 4, 2, 0, 16, 3, 15, 3}, // A
		},
		Flags: FlagAlpha,
	},
	{
		Name:         "ya16be",
		NbComponents: 2,
		Comp: [4]Component{
			{0, 4, 0, 0, 16, 3, 15, 1}, // Y
			{0, 4, 2, 0, 16, 3, 15, 3}, // A
		},
		Flags: FlagBE | FlagAlpha,
	},
	{
		Name:  "videotoolbox_vld",
		Flags: FlagHWAccel,
	},
	{
		Name:         "gbrp",
		NbComponents: 3,
		Comp: [4]Component{
			{2, 1, 0, 0, 8, 0, 7, 1}, // R
			{0, 1, 0, 0, 8, 0, 7, 1}, // G
			{1, 1, 0, 0, 8, 0, 7, 1}, // B
		},
		Flags: FlagPlanar | FlagRGB,
	},
	{
		Name:         "gbrp9le",
		NbComponents: 3,
		Comp: [4]Component{
			{2, 2, 0, 0, 9, 1, 8, 1}, // R
			{0, 2, 0, 0, 9, 1, 8, 1}, // G
			{1, 2, 0, 0, 9, 1, 8, 1}, // B
		},
		Flags: FlagPlanar | FlagRGB,
	},
	{
		Name:         "gbrp9be",
		NbComponents: 3,
		Comp: [4]Component{
			{2, 2, 0, 0, 9, 1, 8, 1}, // R
			{0, 2, 0, 0, 9, 1, 8, 1}, // G
			{1, 2, 0, 0, 9, 1, 8, 1}, // B
		},
		Flags: FlagBE | FlagPlanar | FlagRGB,
	},
	{
		Name:         "gbrp10le",
		NbComponents: 3,
		Comp: [4]Component{
			{2, 2, 0, 0, 10, 1, 9, 1}, // R
			{0, 2, 0, 0, 10, 1, 9, 1}, // G
			{1, 2, 0, 0, 10, 1, 9, 1}, // B
		},
		Flags: FlagPlanar | FlagRGB,
	},
	{
		Name:         "gbrp10be",
		NbComponents: 3,
		Comp: [4]Component{
			{2, 2, 0, 0, 10, 1, 9, 1}, // R
			{0, 2, 0, 0, 10, 1, 9, 1}, // G
			{1, 2, 0, 0, 10, 1, 9, 1}, // B
		},
		Flags: FlagBE | FlagPlanar | FlagRGB,
	},
	{
		Name:         "gbrp12le",
		NbComponents: 3,
		Comp: [4]Component{
			{2, 2, 0, 0, 12, 1, 11, 1}, // R
			{0, 2, 0, 0, 12, 1, 11, 1}, // G
			{1, 2, 0, 0, 12, 1, 11, 1}, // B
		},
		Flags: FlagPlanar | FlagRGB,
	},
	{
		Name:         "gbrp12be",
		NbComponents: 3,
		Comp: [4]Component{
			{2, 2, 0, 0, 12, 1, 11, 1}, // R
			{0, 2, 0, 0, 12, 1, 11, 1}, // G
			{1, 2, 0, 0, 12, 1, 11, 1}, // B
		},
		Flags: FlagBE | FlagPlanar | FlagRGB,
	},
	{
		Name:         "gbrp14le",
		NbComponents: 3,
		Comp: [4]Component{
			{2, 2, 0, 0, 14, 1, 13, 1}, // R
			{0, 2, 0, 0, 14, 1, 13, 1}, // G
			{1, 2, 0, 0, 14, 1, 13, 1}, // B
		},
		Flags: FlagPlanar | FlagRGB,
	},
	{
		Name:         "gbrp14be",
		NbComponents: 3,
		Comp: [4]Component{
			{2, 2, 0, 0, 14, 1, 13, 1}, // R
			{0, 2, 0, 0, 14, 1, 13, 1}, // G
			{1, 2, 0, 0, 14, 1, 13, 1}, // B
		},
		Flags: FlagBE | FlagPlanar | FlagRGB,
	},
	{
		Name:         "gbrp16le",
		NbComponents: 3,
		Comp: [4]Component{
			{2, 2, 0, 0, 16, 1, 15, 1}, // R
			{0, 2, 0, 0, 16, 1, 15, 1}, // G
			{1, 2, 0, 0, 16, 1, 15, 1}, // B
		},
		Flags: FlagPlanar | FlagRGB,
	},
	{
		Name:         "gbrp16be",
		NbComponents: 3,
		Comp: [4]Component{
			{2, 2, 0, 0, 16, 1, 15, 1}, // R
			{0, 2, 0, 0, 16, 1, 15, 1}, // G
			{1, 2, 0, 0, 16, 1, 15, 1}, // B
		},
		Flags: FlagBE | FlagPlanar | FlagRGB,
	},
	{
		Name:         "gbrap",
		NbComponents: 4,
		Comp: [4]Component{
			{2, 1, 0, 0, 8, 0, 7, 1}, // R
			{0, 1, 0, 0, 8, 0, 7, 1}, // G
			{1, 1, 0, 0, 8, 0, 7, 1}, // B
			{3, 1, 0, 0, 8, 0, 7, 1}, // A
		},
		Flags: FlagPlanar | FlagRGB | FlagAlpha,
	},
	{
		Name:         "gbrap16le",
		NbComponents: 4,
		Comp: [4]Component{
			{2, 2, 0, 0, 16, 1, 15, 1}, // R
			{0, 2, 0, 0, 16, 1, 15, 1}, // G
			{1, 2, 0, 0, 16, 1, 15, 1}, // B
			{3, 2, 0, 0, 16, 1, 15, 1}, // A
		},
		Flags: FlagPlanar | FlagRGB | FlagAlpha,
	},
	{
		Name:         "gbrap16be",
		NbComponents: 4,
		Comp: [4]Component{
			{2, 2, 0, 0, 16, 1, 15, 1}, // R
			{0, 2, 0, 0, 16, 1, 15, 1}, // G
			{1, 2, 0, 0, 16, 1, 15, 1}, // B
			{3, 2, 0, 0, 16, 1, 15, 1}, // A
		},
		Flags: FlagBE | FlagPlanar | FlagRGB | FlagAlpha,
	},
	{
		Name:        "vdpau",
		Log2ChromaW: 1,
		Log2ChromaH: 1,
		Flags:       FlagHWAccel,
	},
	{
		Name:         "xyz12le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 6, 0, 4, 12, 5, 11, 1}, // X
			{0, 6, 2, 4, 12, 5, 11, 3}, // Y
			{0, 6, 4, 4, 12, 5, 11, 5}, // Z
		},
	},
	{
		Name:         "xyz12be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 6, 0, 4, 12, 5, 11, 1}, // X
			{0, 6, 2, 4, 12, 5, 11, 3}, // Y
			{0, 6, 4, 4, 12, 5, 11, 5}, // Z
		},
		Flags: FlagBE,
	},
	{
		Name:         "bayer_bggr8",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 1, 0, 0, 2, 0, 1, 1},
			{0, 1, 0, 0, 4, 0, 3, 1},
			{0, 1, 0, 0, 2, 0, 1, 1},
		},
		Flags: FlagRGB | FlagBayer,
	},
	{
		Name:         "bayer_bggr16le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 4, 1, 3, 1},
			{0, 2, 0, 0, 8, 1, 7, 1},
			{0, 2, 0, 0, 4, 1, 3, 1},
		},
		Flags: FlagRGB | FlagBayer,
	},
	{
		Name:         "bayer_bggr16be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 4, 1, 3, 1},
			{0, 2, 0, 0, 8, 1, 7, 1},
			{0, 2, 0, 0, 4, 1, 3, 1},
		},
		Flags: FlagBE | FlagRGB | FlagBayer,
	},
	{
		Name:         "bayer_rggb8",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 1, 0, 0, 2, 0, 1, 1},
			{0, 1, 0, 0, 4, 0, 3, 1},
			{0, 1, 0, 0, 2, 0, 1, 1},
		},
		Flags: FlagRGB | FlagBayer,
	},
	{
		Name:         "bayer_rggb16le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 4, 1, 3, 1},
			{0, 2, 0, 0, 8, 1, 7, 1},
			{0, 2, 0, 0, 4, 1, 3, 1},
		},
		Flags: FlagRGB | FlagBayer,
	},
	{
		Name:         "bayer_rggb16be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 4, 1, 3, 1},
			{0, 2, 0, 0, 8, 1, 7, 1},
			{0, 2, 0, 0, 4, 1, 3, 1},
		},
		Flags: FlagBE | FlagRGB | FlagBayer,
	},
	{
		Name:         "bayer_gbrg8",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 1, 0, 0, 2, 0, 1, 1},
			{0, 1, 0, 0, 4, 0, 3, 1},
			{0, 1, 0, 0, 2, 0, 1, 1},
		},
		Flags: FlagRGB | FlagBayer,
	},
	{
		Name:         "bayer_gbrg16le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 4, 1, 3, 1},
			{0, 2, 0, 0, 8, 1, 7, 1},
			{0, 2, 0, 0, 4, 1, 3, 1},
		},
		Flags: FlagRGB | FlagBayer,
	},
	{
		Name:         "bayer_gbrg16be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 4, 1, 3, 1},
			{0, 2, 0, 0, 8, 1, 7, 1},
			{0, 2, 0, 0, 4, 1, 3, 1},
		},
		Flags: FlagBE | FlagRGB | FlagBayer,
	},
	{
		Name:         "bayer_grbg8",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 1, 0, 0, 2, 0, 1, 1},
			{0, 1, 0, 0, 4, 0, 3, 1},
			{0, 1, 0, 0, 2, 0, 1, 1},
		},
		Flags: FlagRGB | FlagBayer,
	},
	{
		Name:         "bayer_grbg16le",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 4, 1, 3, 1},
			{0, 2, 0, 0, 8, 1, 7, 1},
			{0, 2, 0, 0, 4, 1, 3, 1},
		},
		Flags: FlagRGB | FlagBayer,
	},
	{
		Name:         "bayer_grbg16be",
		NbComponents: 3,
		Comp: [4]Component{
			{0, 2, 0, 0, 4, 1, 3, 1},
			{0, 2, 0, 0, 8, 1, 7, 1},
			{0, 2, 0, 0, 4, 1, 3, 1},
		},
		Flags: FlagBE | FlagRGB | FlagBayer,
	},
	{
		Name:         "nv16",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 1, 0, 0, 8, 0, 7, 1}, // Y
			{1, 2, 0, 0, 8, 1, 7, 1}, // U
			{1, 2, 1, 0, 8, 1, 7, 2}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "nv20le",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 4, 0, 0, 10, 3, 9, 1}, // U
			{1, 4, 2, 0, 10, 3, 9, 3}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "nv20be",
		NbComponents: 3,
		Log2ChromaW:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 10, 1, 9, 1}, // Y
			{1, 4, 0, 0, 10, 3, 9, 1}, // U
			{1, 4, 2, 0, 10, 3, 9, 3}, // V
		},
		Flags: FlagPlanar | FlagBE,
	},
	{
		Name:  "vda",
		Flags: FlagHWAccel,
	},
	{
		Name:  "qsv",
		Flags: FlagHWAccel,
	},
	{
		Name:  "mediacodec",
		Flags: FlagHWAccel,
	},
	{
		Name:  "mmal",
		Flags: FlagHWAccel,
	},
	{
		Name:  "cuda",
		Flags: FlagHWAccel,
	},
	{
		Name:         "ayuv64le",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 8, 2, 0, 16, 7, 15, 3}, // Y
			{0, 8, 4, 0, 16, 7, 15, 5}, // U
			{0, 8, 6, 0, 16, 7, 15, 7}, // V
			{0, 8, 0, 0, 16, 7, 15, 1}, // A
		},
		Flags: FlagAlpha,
	},
	{
		Name:         "ayuv64be",
		NbComponents: 4,
		Comp: [4]Component{
			{0, 8, 2, 0, 16, 7, 15, 3}, // Y
			{0, 8, 4, 0, 16, 7, 15, 5}, // U
			{0, 8, 6, 0, 16, 7, 15, 7}, // V
			{0, 8, 0, 0, 16, 7, 15, 1}, // A
		},
		Flags: FlagBE | FlagAlpha,
	},
	{
		Name:         "p010le",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 6, 10, 1, 9, 1}, // Y
			{1, 4, 0, 6, 10, 3, 9, 1}, // U
			{1, 4, 2, 6, 10, 3, 9, 3}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "p010be",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 6, 10, 1, 9, 1}, // Y
			{1, 4, 0, 6, 10, 3, 9, 1}, // U
			{1, 4, 2, 6, 10, 3, 9, 3}, // V
		},
		Flags: FlagPlanar | FlagBE,
	},
	{
		Name:         "p016le",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
			{1, 4, 0, 0, 16, 3, 15, 1}, // U
			{1, 4, 2, 0, 16, 3, 15, 3}, // V
		},
		Flags: FlagPlanar,
	},
	{
		Name:         "p016be",
		NbComponents: 3,
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		Comp: [4]Component{
			{0, 2, 0, 0, 16, 1, 15, 1}, // Y
			{1, 4, 0, 0, 16, 3, 15, 1}, // U
			{1, 4, 2, 0, 16, 3, 15, 3}, // V
		},
		Flags: FlagPlanar | FlagBE,
	},
	{
		Name:         "gbrap12le",
		NbComponents: 4,
		Comp: [4]Component{
			{2, 2, 0, 0, 12, 1, 11, 1}, // R
			{0, 2, 0, 0, 12, 1, 11, 1}, // G
			{1, 2, 0, 0, 12, 1, 11, 1}, // B
			{3, 2, 0, 0, 12, 1, 11, 1}, // A
		},
		Flags: FlagPlanar | FlagRGB | FlagAlpha,
	},
	{
		Name:         "gbrap12be",
		NbComponents: 4,
		Comp: [4]Component{
			{2, 2, 0, 0, 12, 1, 11, 1}, // R
			{0, 2, 0, 0, 12, 1, 11, 1}, // G
			{1, 2, 0, 0, 12, 1, 11, 1}, // B
			{3, 2, 0, 0, 12, 1, 11, 1}, // A
		},
		Flags: FlagBE | FlagPlanar | FlagRGB | FlagAlpha,
	},
	{
		Name:         "gbrap10le",
		NbComponents: 4,
		Comp: [4]Component{
			{2, 2, 0, 0, 10, 1, 9, 1}, // R
			{0, 2, 0, 0, 10, 1, 9, 1}, // G
			{1, 2, 0, 0, 10, 1, 9, 1}, // B
			{3, 2, 0, 0, 10, 1, 9, 1}, // A
		},
		Flags: FlagPlanar | FlagRGB | FlagAlpha,
	},
	{
		Name:         "gbrap10be",
		NbComponents: 4,
		Comp: [4]Component{
			{2, 2, 0, 0, 10, 1, 9, 1}, // R
			{0, 2, 0, 0, 10, 1, 9, 1}, // G
			{1, 2, 0, 0, 10, 1, 9, 1}, // B
			{3, 2, 0, 0, 10, 1, 9, 1}, // A
		},
		Flags: FlagBE | FlagPlanar | FlagRGB | FlagAlpha,
	},
	{
		Name:  "d3d11",
		Flags: FlagHWAccel,
	},
	{
		Name:         "gbrpf32be",
		NbComponents: 3,
		Comp: [4]Component{
			{2, 4, 0, 0, 32, 3, 31, 1}, // R
			{0, 4, 0, 0, 32, 3, 31, 1}, // G
			{1, 4, 0, 0, 32, 3, 31, 1}, // B
		},
		Flags: FlagBE | FlagPlanar | FlagRGB | FlagFloat,
	},
	{
		Name:         "gbrpf32le",
		NbComponents: 3,
		Comp: [4]Component{
			{2, 4, 0, 0, 32, 3, 31, 1}, // R
			{0, 4, 0, 0, 32, 3, 31, 1}, // G
			{1, 4, 0, 0, 32, 3, 31, 1}, // B
		},
		Flags: FlagPlanar | FlagFloat | FlagRGB,
	},
	{
		Name:         "gbrapf32be",
		NbComponents: 4,
		Comp: [4]Component{
			{2, 4, 0, 0, 32, 3, 31, 1}, // R
			{0, 4, 0, 0, 32, 3, 31, 1}, // G
			{1, 4, 0, 0, 32, 3, 31, 1}, // B
			{3, 4, 0, 0, 32, 3, 31, 1}, // A
		},
		Flags: FlagBE | FlagPlanar | FlagAlpha | FlagRGB | FlagFloat,
	},
	{
		Name:         "gbrapf32le",
		NbComponents: 4,
		Comp: [4]Component{
			{2, 4, 0, 0, 32, 3, 31, 1}, // R
			{0, 4, 0, 0, 32, 3, 31, 1}, // G
			{1, 4, 0, 0, 32, 3, 31, 1}, // B
			{3, 4, 0, 0, 32, 3, 31, 1}, // A
		},
		Flags: FlagPlanar | FlagAlpha | FlagRGB | FlagFloat,
	},
	{
		Name:  "drm_prime",
		Flags: FlagHWAccel,
	},
}

const (
	PixFmtNone        PixelFormat = -1
	PixFmtYUV420P     PixelFormat = 0
	PixFmtYUYV422     PixelFormat = 1
	PixFmtRGB24       PixelFormat = 3
	PixFmtBGR24       PixelFormat = 4
	PixFmtYUV422P     PixelFormat = 5
	PixFmtYUV444P     PixelFormat = 6
	PixFmtGray8       PixelFormat = 10
	PixFmtMonoWhite   PixelFormat = 11
	PixFmtMonoBlack   PixelFormat = 12
	PixFmtPAL8        PixelFormat = 13
	PixFmtYUVJ420P    PixelFormat = 14
	PixFmtNV12        PixelFormat = 26
	PixFmtNV21        PixelFormat = 27
	PixFmtARGB        PixelFormat = 28
	PixFmtRGBA        PixelFormat = 29
	PixFmtABGR        PixelFormat = 30
	PixFmtBGRA        PixelFormat = 31
	PixFmtGray16BE    PixelFormat = 42
	PixFmtGray16LE    PixelFormat = 43
	PixFmtRGB48BE     PixelFormat = 71
	PixFmtRGB48LE     PixelFormat = 72
	PixFmtYUV420P10LE PixelFormat = 94
	PixFmtYUV420P10BE PixelFormat = 95
	PixFmtYUV422P10LE PixelFormat = 104
	PixFmtYUV444P10LE PixelFormat = 114
	PixFmtYUV420P12LE PixelFormat = 96
	PixFmtP010LE      PixelFormat = 168
	PixFmtVAAPI       PixelFormat = 91
	PixFmtRGB8        PixelFormat = 23
	PixFmtBGR8        PixelFormat = 20
	PixFmtRGB4        PixelFormat = 24
	PixFmtBGR4        PixelFormat = 21
)
