package options

import "fmt"

type Options struct {
	Build   *Build  `command:"build" description:"builds API Gateway proxy response"`
	Decode  *Decode `command:"decode" description:"prints decoded body of API Gateway proxy response"`
	Version bool    `short:"v" long:"version" description:"show version"`
}

func (o *Options) Init() error {
	if o.Build != nil {
		return o.Build.Init()
	}
	if o.Decode != nil {
		return o.Decode.Init()
	}
	if !o.Version {
		return fmt.Errorf("command was empty, use build or decode")
	}
	return nil
}
