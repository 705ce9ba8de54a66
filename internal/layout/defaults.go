package layout

// TitleBlueprint is the blueprint every title slide places its image with,
// whatever its configured layout_type.
const TitleBlueprint = "title_youtube"

// Defaults returns the built-in blueprints. Coordinates target a 33.867 x
// 19.05 cm (16:9) slide.
func Defaults() []*Blueprint {
	return []*Blueprint{
		MustBlueprint("single_wide", "One wide (landscape) image", 1,
			Placement{Left: 10.2, Top: 4.2, MaxWidth: 20.0, MaxHeight: 10.0}),
		MustBlueprint("single_tall", "One tall (portrait) image", 1,
			Placement{Left: 10.46, Top: 2.96, MaxWidth: 11.2, MaxHeight: 15.2}),
		MustBlueprint("two_stack", "Two images stacked vertically", 2,
			Placement{Left: 10.16, Top: 3.47, MaxWidth: 18.4, MaxHeight: 3.91},
			Placement{Left: 10.16, Top: 11.0, MaxWidth: 18.07, MaxHeight: 4.58}),
		MustBlueprint("two_tall_row", "Two tall images side by side", 2,
			Placement{Left: 10.2, Top: 2.4, MaxWidth: 10.5, MaxHeight: 14.5},
			Placement{Left: 21.89, Top: 2.4, MaxWidth: 10.5, MaxHeight: 14.5}),
		MustBlueprint("three_stack", "Three images stacked vertically", 3,
			Placement{Left: 10.16, Top: 3.0, MaxWidth: 18.4, MaxHeight: 4.0},
			Placement{Left: 10.16, Top: 7.5, MaxWidth: 18.4, MaxHeight: 4.0},
			Placement{Left: 10.16, Top: 12.0, MaxWidth: 18.4, MaxHeight: 4.0}),
		MustBlueprint(TitleBlueprint, "Title slide logo in the right-hand square", 1,
			Placement{Left: 14.41, Top: 0.0, MaxWidth: 19.46, MaxHeight: 19.05}),
	}
}

// RegisterDefaults registers Defaults into r.
func RegisterDefaults(r *Registry) error {
	for _, b := range Defaults() {
		if err := r.Register(b); err != nil {
			return err
		}
	}
	return nil
}
