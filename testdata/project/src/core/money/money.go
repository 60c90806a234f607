package money

type Cents int64

func (c Cents) Add(o Cents) Cents { return c + o }
