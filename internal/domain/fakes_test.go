package domain

type playFunc func(turn Turn) error

func (f playFunc) Play(turn Turn) error {
	return f(turn)
}

func constant(action Action) Agent {
	return playFunc(func(turn Turn) error {
		_, err := turn.Submit(action)
		return err
	})
}

type mirror struct {
	next Action
}

func newMirror() *mirror {
	return &mirror{next: Cooperate}
}

func (m *mirror) Play(turn Turn) error {
	result, err := turn.Submit(m.next)
	if err != nil {
		return err
	}
	m.next = result.OpponentAction
	return nil
}
