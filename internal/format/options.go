package format

type Options struct {
	IndentWidth int
	UseTabs     bool
	// BaseIndent prefixes every line after the first; it is the indentation of
	// the line the rendered item starts on.
	BaseIndent string
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}
