package transform

import "strings"

var htmlTags = wordSet(`a abbr acronym address applet area article aside audio b base basefont bdi bdo
big blink blockquote body br button canvas caption center cite code col colgroup
content data datalist dd del details dfn dialog dir div dl dt element em embed
fieldset figcaption figure font footer form frame frameset h1 h2 h3 h4 h5 h6 head
header hgroup hr html i iframe image img input ins kbd keygen label legend li link
main map mark marquee math menu menuitem meta meter nav nobr noembed noframes
noscript object ol optgroup option output p param picture plaintext portal pre
progress q rb rp rt rtc ruby s samp script search section select shadow slot small
source spacer span strike strong style sub summary sup table tbody td template
textarea tfoot th thead time title tr track tt u ul var video wbr xmp`)

var svgTags = wordSet(`a altGlyph altGlyphDef altGlyphItem animate animateColor animateMotion
animateTransform circle clipPath color-profile cursor defs desc discard ellipse
feBlend feColorMatrix feComponentTransfer feComposite feConvolveMatrix
feDiffuseLighting feDisplacementMap feDistantLight feDropShadow feFlood feFuncA
feFuncB feFuncG feFuncR feGaussianBlur feImage feMerge feMergeNode feMorphology
feOffset fePointLight feSpecularLighting feSpotLight feTile feTurbulence filter
font font-face font-face-format font-face-name font-face-src font-face-uri
foreignObject g glyph glyphRef hatch hatchpath hkern image line linearGradient
marker mask mesh meshgradient meshpatch meshrow metadata missing-glyph mpath path
pattern polygon polyline radialGradient rect script set solidcolor stop style svg
switch symbol text textPath title tref tspan unknown use view vkern`)

func wordSet(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

// IsNativeTag reports whether name belongs to the HTML or SVG tag vocabulary.
func IsNativeTag(name string) bool {
	if _, ok := htmlTags[name]; ok {
		return true
	}
	_, ok := svgTags[name]
	return ok
}

func startsLower(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}
