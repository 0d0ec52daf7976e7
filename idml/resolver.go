package idml

import "strings"

// StyleResolver flattens BasedOn chains so that every attribute a style
// inherits is present on the resolved copy. Results are cached per reference.
type StyleResolver struct {
	styles   map[string]*StyleDef
	prefix   string
	resolved map[string]*StyleDef
}

// NewParagraphStyleResolver creates a resolver over the document's paragraph styles.
func NewParagraphStyleResolver(doc *Document) *StyleResolver {
	return newStyleResolver(doc.ParagraphStyles, "ParagraphStyle/")
}

// NewCharacterStyleResolver creates a resolver over the document's character styles.
func NewCharacterStyleResolver(doc *Document) *StyleResolver {
	return newStyleResolver(doc.CharacterStyles, "CharacterStyle/")
}

func newStyleResolver(styles map[string]*StyleDef, prefix string) *StyleResolver {
	return &StyleResolver{
		styles:   styles,
		prefix:   prefix,
		resolved: make(map[string]*StyleDef),
	}
}

// Resolve returns the flattened style for ref. ok is false when ref names
// no known style; the returned style is then nil.
func (sr *StyleResolver) Resolve(ref string) (*StyleDef, bool) {
	def, ok := findStyle(sr.styles, ref, sr.prefix)
	if !ok {
		return nil, false
	}

	if resolved, ok := sr.resolved[def.Ref]; ok {
		return resolved, true
	}

	resolved := &StyleDef{Ref: def.Ref, Name: def.Name, BasedOn: def.BasedOn}
	for _, ref := range sr.buildInheritanceChain(def.Ref) {
		if d, ok := findStyle(sr.styles, ref, sr.prefix); ok {
			MergeStyle(resolved, d)
		}
	}

	sr.resolved[def.Ref] = resolved
	return resolved, true
}

// buildInheritanceChain returns style references from base to derived.
func (sr *StyleResolver) buildInheritanceChain(ref string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := ref
	for current != "" && !visited[current] {
		visited[current] = true
		chain = append([]string{current}, chain...)

		def, ok := findStyle(sr.styles, current, sr.prefix)
		if !ok {
			break
		}
		current = def.BasedOn
		if strings.Contains(current, "[No ") {
			break
		}
	}

	return chain
}

// MergeStyle copies every attribute set on src onto dst. Attributes that
// src leaves unset keep dst's value.
func MergeStyle(dst, src *StyleDef) {
	if src.FontFamily != "" {
		dst.FontFamily = src.FontFamily
	}
	if src.FontStyle != "" {
		dst.FontStyle = src.FontStyle
	}
	if src.PointSize != nil {
		dst.PointSize = src.PointSize
	}
	if src.FillColor != "" {
		dst.FillColor = src.FillColor
	}
	if src.Position != "" {
		dst.Position = src.Position
	}
	if src.Justification != "" {
		dst.Justification = src.Justification
	}
	if src.FirstLineIndent != nil {
		dst.FirstLineIndent = src.FirstLineIndent
	}
	if src.LeftIndent != nil {
		dst.LeftIndent = src.LeftIndent
	}
	if src.RightIndent != nil {
		dst.RightIndent = src.RightIndent
	}
	if src.SpaceBefore != nil {
		dst.SpaceBefore = src.SpaceBefore
	}
	if src.SpaceAfter != nil {
		dst.SpaceAfter = src.SpaceAfter
	}
	if src.Leading != nil {
		dst.Leading = src.Leading
		dst.AutoLeading = nil
	}
	if src.AutoLeading != nil && src.Leading == nil {
		dst.AutoLeading = src.AutoLeading
		dst.Leading = nil
	}
	if src.Tracking != nil {
		dst.Tracking = src.Tracking
	}
	if src.HorizontalScale != nil {
		dst.HorizontalScale = src.HorizontalScale
	}
	if len(src.TabStops) > 0 {
		dst.TabStops = append([]TabStop(nil), src.TabStops...)
	}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}
