package options

type Decode struct {
	SourceURL string `short:"s" long:"src" description:"proxy response json location, - for stdin" default:"-"`
}

func (d *Decode) Init() error {
	if d.SourceURL == "" {
		d.SourceURL = StdIn
	}
	if d.SourceURL != StdIn {
		d.SourceURL = ensureAbsPath(d.SourceURL)
	}
	return nil
}
