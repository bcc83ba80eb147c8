// Package element describes user interface elements declaratively. A Builder
// turns the descriptions into real widgets.
package element

import "slices"

// Element describes a widget and its children.
type Element struct {
	Tag        string
	ClassNames []string
	Children   []*Element
	Text       string

	// Value is the current value of an input.
	Value string

	OnClick  func()
	OnChange func(value string)
}

// Builder realizes an element tree into widgets. Realize is called with the
// full tree on every render; builders replace whatever they built before.
type Builder interface {
	Realize(root *Element) error
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(root *Element) error

func (fn BuilderFunc) Realize(root *Element) error {
	return fn(root)
}

func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.ClassNames, name)
}

// Walk calls fn for e and every descendant, depth first, parents before
// children.
func (e *Element) Walk(fn func(*Element)) {
	if e == nil {
		return
	}
	fn(e)
	for _, child := range e.Children {
		child.Walk(fn)
	}
}

// Find returns every element in the tree matching the predicate, in tree
// order.
func (e *Element) Find(match func(*Element) bool) []*Element {
	var found []*Element
	e.Walk(func(el *Element) {
		if match(el) {
			found = append(found, el)
		}
	})
	return found
}

// First returns the first element in the tree matching the predicate, or nil.
func (e *Element) First(match func(*Element) bool) *Element {
	found := e.Find(match)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// ByTag matches elements with the tag.
func ByTag(tag string) func(*Element) bool {
	return func(e *Element) bool { return e.Tag == tag }
}

// ByClass matches elements carrying the class.
func ByClass(name string) func(*Element) bool {
	return func(e *Element) bool { return e.HasClass(name) }
}

// Texts returns the text of each element.
func Texts(elements []*Element) []string {
	texts := make([]string, 0, len(elements))
	for _, e := range elements {
		texts = append(texts, e.Text)
	}
	return texts
}
