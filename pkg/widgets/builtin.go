package widgets

const (
	HeroSlider          = "hero-slider"
	TestimonialCarousel = "testimonial-carousel"
	Lightbox            = "lightbox"
	ScrollReveal        = "scroll-reveal"
	SmoothScroll        = "smooth-scroll"
	ScrollProgress      = "scroll-progress"
)

// Defaults returns the widgets the site ships with, freshly constructed.
func Defaults() []Widget {
	return []Widget{
		NewTracked(HeroSlider, map[string]any{
			"effect":   "fade",
			"speed":    1000,
			"loop":     true,
			"autoplay": map[string]any{"delay": 5000, "disableOnInteraction": false},
		}),
		NewTracked(TestimonialCarousel, map[string]any{
			"slidesPerView": 1,
			"speed":         800,
			"spaceBetween":  30,
			"loop":          true,
			"autoplay":      map[string]any{"delay": 5000, "disableOnInteraction": false},
			"breakpoints": map[string]any{
				"640":  map[string]any{"slidesPerView": 1},
				"768":  map[string]any{"slidesPerView": 2},
				"1024": map[string]any{"slidesPerView": 3},
			},
		}),
		NewTracked(Lightbox, map[string]any{
			"selector": "[data-lightbox]",
			"loop":     true,
		}),
		NewTracked(ScrollReveal, map[string]any{
			"selector": "[data-gsap]",
			"duration": 0.8,
			"start":    "top 85%",
		}),
		NewTracked(SmoothScroll, map[string]any{
			"duration":        1.2,
			"smoothWheel":     true,
			"wheelMultiplier": 1,
			"touchMultiplier": 2,
		}),
		NewTracked(ScrollProgress, map[string]any{
			"position": "top",
		}),
	}
}

// Mount places a widget in a container of a page.
type Mount struct {
	Widget    string
	Container string
}

// Plans lists, per page, the widgets to mount in order.
type Plans map[string][]Mount

var everyPage = []Mount{
	{Widget: SmoothScroll, Container: "body"},
	{Widget: ScrollProgress, Container: "#scroll-progress"},
	{Widget: ScrollReveal, Container: "main"},
}

// DefaultPlans is the widget layout of the site's pages.
func DefaultPlans() Plans {
	page := func(extra ...Mount) []Mount {
		return append(append([]Mount{}, everyPage...), extra...)
	}
	return Plans{
		"home": page(
			Mount{Widget: HeroSlider, Container: "#hero"},
			Mount{Widget: TestimonialCarousel, Container: "#testimonials"},
		),
		"menu":         page(),
		"gallery":      page(Mount{Widget: Lightbox, Container: "#gallery-grid"}),
		"blog":         page(),
		"post":         page(),
		"about":        page(Mount{Widget: TestimonialCarousel, Container: "#testimonials"}),
		"contact":      page(),
		"reservations": page(),
	}
}
