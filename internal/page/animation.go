package page

import (
	"strconv"
	"time"
)

// GlobalSheetID identifies the page-scoped global style sheet in a Head.
const GlobalSheetID = "page-globals"

const (
	fadeInName     = "fade-in"
	fadeInDuration = 800 * time.Millisecond
	fadeInEasing   = "ease-out"
)

// FadeIn is an entrance animation class.
type FadeIn struct {
	Class string
	Delay time.Duration
}

// FadeIns are the entrance classes sections use to stagger their content.
var FadeIns = []FadeIn{
	{Class: "animate-fade-in"},
	{Class: "animate-fade-in-delay", Delay: 200 * time.Millisecond},
	{Class: "animate-fade-in-delay-2", Delay: 400 * time.Millisecond},
	{Class: "animate-fade-in-delay-3", Delay: 600 * time.Millisecond},
}

// Duration is the running time shared by every fade-in class.
func (f FadeIn) Duration() time.Duration {
	return fadeInDuration
}

// Animation returns the value of the class's animation shorthand. Delayed
// classes fill both directions so content stays hidden until it starts.
func (f FadeIn) Animation() string {
	v := fadeInName + " " + seconds(fadeInDuration) + " " + fadeInEasing
	if f.Delay > 0 {
		v += " " + seconds(f.Delay) + " both"
	}
	return v
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

// GlobalStyles returns the decorative rules the page mounts into a document:
// the fade-in keyframes and classes, smooth anchor scrolling and the themed
// scrollbar.
func GlobalStyles() StyleSheet {
	sheet := StyleSheet{
		ID: GlobalSheetID,
		Keyframes: []Keyframes{{
			Name: fadeInName,
			Frames: []Frame{
				{Selector: "from", Decls: []Decl{
					{"opacity", "0"},
					{"transform", "translateY(30px)"},
				}},
				{Selector: "to", Decls: []Decl{
					{"opacity", "1"},
					{"transform", "translateY(0)"},
				}},
			},
		}},
	}

	for _, f := range FadeIns {
		sheet.Rules = append(sheet.Rules, Rule{
			Selector: "." + f.Class,
			Decls:    []Decl{{"animation", f.Animation()}},
		})
	}

	sheet.Rules = append(sheet.Rules,
		Rule{Selector: "html", Decls: []Decl{{"scroll-behavior", "smooth"}}},
		Rule{Selector: "::-webkit-scrollbar", Decls: []Decl{{"width", "8px"}}},
		Rule{Selector: "::-webkit-scrollbar-track", Decls: []Decl{
			{"background", "var(" + TokenMuted + ")"},
		}},
		Rule{Selector: "::-webkit-scrollbar-thumb", Decls: []Decl{
			{"background", "var(" + TokenPrimary + ")"},
			{"border-radius", "4px"},
		}},
		Rule{Selector: "::-webkit-scrollbar-thumb:hover", Decls: []Decl{
			{"background", "var(" + TokenPrimary + ")"},
			{"opacity", "0.8"},
		}},
	)
	return sheet
}
