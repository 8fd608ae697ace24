package catalog

// DemoData returns the storefront's demo catalog: sixteen materials, six
// legs, five artistic details and six products.
func DemoData() Data {
	materials := []Material{
		{ID: "oak", Name: "Oak Wood", Category: MaterialWood, Color: "#DEB887", PriceModifier: 0, EcoFriendly: true},
		{ID: "walnut", Name: "Walnut Wood", Category: MaterialWood, Color: "#8B4513", PriceModifier: 150, EcoFriendly: true},
		{ID: "mahogany", Name: "Mahogany Wood", Category: MaterialWood, Color: "#C04000", PriceModifier: 200},
		{ID: "cherry", Name: "Cherry Wood", Category: MaterialWood, Color: "#C71585", PriceModifier: 180, EcoFriendly: true},
		{ID: "pine", Name: "Pine Wood", Category: MaterialWood, Color: "#FFE4B5", PriceModifier: -50, EcoFriendly: true},
		{ID: "linen-beige", Name: "Linen Beige", Category: MaterialFabric, Color: "#F5F5DC", PriceModifier: 0, EcoFriendly: true},
		{ID: "velvet-gray", Name: "Velvet Gray", Category: MaterialFabric, Color: "#808080", PriceModifier: 250},
		{ID: "cotton-white", Name: "Cotton White", Category: MaterialFabric, Color: "#FFFFFF", PriceModifier: 50, EcoFriendly: true},
		{ID: "velvet-teal", Name: "Velvet Teal", Category: MaterialFabric, Color: "#008080", PriceModifier: 280},
		{ID: "linen-charcoal", Name: "Linen Charcoal", Category: MaterialFabric, Color: "#36454F", PriceModifier: 100, EcoFriendly: true},
		{ID: "leather-brown", Name: "Leather Brown", Category: MaterialLeather, Color: "#8B4513", PriceModifier: 400},
		{ID: "leather-black", Name: "Leather Black", Category: MaterialLeather, Color: "#000000", PriceModifier: 420},
		{ID: "leather-tan", Name: "Leather Tan", Category: MaterialLeather, Color: "#D2B48C", PriceModifier: 380},
		{ID: "steel-brushed", Name: "Brushed Steel", Category: MaterialMetal, Color: "#C0C0C0", PriceModifier: 100, EcoFriendly: true},
		{ID: "brass", Name: "Brass", Category: MaterialMetal, Color: "#B5A642", PriceModifier: 180, EcoFriendly: true},
		{ID: "black-metal", Name: "Black Metal", Category: MaterialMetal, Color: "#2C2C2C", PriceModifier: 120, EcoFriendly: true},
	}

	woods := []string{"oak", "walnut", "mahogany", "cherry"}
	metals := []string{"steel-brushed", "brass", "black-metal"}

	legs := []Part{
		legPart("modern-metal", "Modern Metal", 0, metals...),
		legPart("carved-wooden", "Carved Wooden", 180, woods...),
		legPart("modern-wooden", "Modern Wooden", 100, append(woods, "pine")...),
		legPart("tapered", "Tapered Legs", 80, "oak", "walnut", "cherry", "pine"),
		legPart("hairpin", "Hairpin Legs", 120, metals...),
		legPart("turned", "Turned Legs", 150, woods...),
	}

	arts := []Part{
		artPart("floral-carving", "Floral Carving", "floral-carving", 250, woods...),
		artPart("geometric-pattern", "Geometric Pattern", "geometric", 200, append(woods, "pine")...),
		artPart("tufted-buttons", "Tufted Buttons", "tufted", 180,
			"linen-beige", "velvet-gray", "cotton-white", "velvet-teal", "leather-brown", "leather-black"),
		artPart("channel-tufting", "Channel Tufting", "channel", 220,
			"velvet-gray", "velvet-teal", "leather-brown", "leather-black", "linen-charcoal"),
		artPart("plain", "Plain (No Art)", "plain", 0,
			"oak", "walnut", "mahogany", "cherry", "pine", "linen-beige", "velvet-gray", "cotton-white"),
	}

	byID := make(map[string]Material, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}
	pick := func(ids ...string) []Material {
		out := make([]Material, 0, len(ids))
		for _, id := range ids {
			if m, ok := byID[id]; ok {
				out = append(out, m)
			}
		}
		return out
	}

	products := []Product{
		{
			ID:          "sofa-modern-1",
			Name:        "Modern L-Shape Sofa",
			Description: "Contemporary L-shaped sofa with customizable legs, fabric, and artistic details. Perfect for modern living spaces.",
			Category:    CategorySofa,
			BasePrice:   1299,
			Images: []string{
				"/images/products/sofa-modern-1.png",
				"/images/products/sofa-modern-1-alt1.png",
				"/images/products/sofa-modern-1-alt2.png",
			},
			ModelURL:       "/models/products/sofa-modern.glb",
			AvailableParts: []Part{legs[0], legs[1], legs[2], legs[4], arts[2], arts[3], arts[4]},
			Materials: pick("linen-beige", "velvet-gray", "cotton-white", "velvet-teal",
				"linen-charcoal", "leather-brown", "leather-black", "leather-tan"),
			Featured: true,
			Tags:     []string{"modern", "sectional", "living-room", "customizable"},
		},
		{
			ID:          "sofa-classic-1",
			Name:        "Classic 3-Seater Sofa",
			Description: "Elegant classic sofa with traditional design. Customize with various wood finishes and upholstery options.",
			Category:    CategorySofa,
			BasePrice:   1099,
			Images: []string{
				"/images/products/sofa-classic-1.png",
				"/images/products/sofa-classic-1-alt1.png",
			},
			ModelURL:       "/models/products/sofa-classic.glb",
			AvailableParts: []Part{legs[1], legs[5], arts[0], arts[2], arts[4]},
			Materials:      pick("oak", "walnut", "mahogany", "cherry", "leather-brown", "leather-black", "velvet-gray"),
			Featured:       true,
			Tags:           []string{"classic", "traditional", "living-room"},
		},
		{
			ID:          "bed-platform-1",
			Name:        "Platform Bed with Headboard",
			Description: "Modern platform bed with customizable headboard art and leg styles. Available in multiple wood finishes.",
			Category:    CategoryBed,
			BasePrice:   899,
			Images: []string{
				"/images/products/bed-platform-1.png",
				"/images/products/bed-platform-1-alt1.png",
			},
			ModelURL:       "/models/products/bed-platform.glb",
			AvailableParts: []Part{legs[2], legs[3], arts[0], arts[1], arts[4]},
			Materials:      pick("oak", "walnut", "mahogany", "cherry", "pine"),
			Featured:       true,
			Tags:           []string{"modern", "bedroom", "platform"},
		},
		{
			ID:             "dressingtable-1",
			Name:           "Contemporary Dressing Table",
			Description:    "Sleek dressing table with mirror and storage. Customize wood finish and leg style.",
			Category:       CategoryDressingTable,
			BasePrice:      599,
			Images:         []string{"/images/products/dressing-table-1.png"},
			ModelURL:       "/models/products/dressing-table.glb",
			AvailableParts: []Part{legs[2], legs[3], legs[4]},
			Materials:      pick("oak", "walnut", "pine", "white-painted"),
			Tags:           []string{"modern", "bedroom", "vanity"},
		},
		{
			ID:             "tvtable-1",
			Name:           "Modern TV Console",
			Description:    "Contemporary TV stand with storage compartments. Customizable wood finish and leg options.",
			Category:       CategoryTVTable,
			BasePrice:      499,
			Images:         []string{"/images/products/tv-table-1.png"},
			ModelURL:       "/models/products/tv-console.glb",
			AvailableParts: []Part{legs[2], legs[3], legs[4]},
			Materials:      pick("oak", "walnut", "mahogany", "pine"),
			Featured:       true,
			Tags:           []string{"modern", "living-room", "entertainment"},
		},
		{
			ID:             "chair-accent-1",
			Name:           "Accent Armchair",
			Description:    "Stylish accent chair with customizable upholstery and leg finish. Perfect for reading nooks.",
			Category:       CategoryChair,
			BasePrice:      399,
			Images:         []string{"/images/products/chair-accent-1.png"},
			ModelURL:       "/models/products/chair-accent.glb",
			AvailableParts: []Part{legs[2], legs[3], legs[5], arts[2], arts[4]},
			Materials:      pick("linen-beige", "velvet-gray", "velvet-teal", "cotton-white"),
			Tags:           []string{"accent", "living-room", "reading"},
		},
	}

	return Data{
		Products:  products,
		Materials: materials,
		Parts:     append(append([]Part(nil), legs...), arts...),
	}
}

// MustDemo builds the demo catalog and panics if it is inconsistent.
func MustDemo() *Catalog {
	c, err := New(DemoData())
	if err != nil {
		panic(err)
	}
	return c
}

func legPart(id, name string, price int64, materials ...string) Part {
	return Part{
		ID:            id,
		Name:          name,
		Type:          PartLeg,
		ModelURL:      "/models/parts/legs/" + id + ".glb",
		Thumbnail:     "/images/parts/legs/" + id + ".png",
		PriceModifier: price,
		Materials:     append([]string(nil), materials...),
	}
}

func artPart(id, name, asset string, price int64, materials ...string) Part {
	return Part{
		ID:            id,
		Name:          name,
		Type:          PartArt,
		ModelURL:      "/models/parts/arts/" + asset + ".glb",
		Thumbnail:     "/images/parts/arts/" + asset + ".png",
		PriceModifier: price,
		Materials:     append([]string(nil), materials...),
	}
}
