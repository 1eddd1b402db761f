package suggest

// Transition applies ev to s and returns the next state and its effects.
// It never mutates s.
func Transition(cfg Config, s State, ev Event) (State, []Effect) {
	next := s
	switch ev := ev.(type) {
	case Focus:
		next.Open = true
		return resetActive(next), nil

	case TextChanged:
		next.Query = ev.Value
		next.Open = true
		next.Err = ""
		return resetActive(next), []Effect{Changed{Value: ev.Value}}

	case KeyPressed:
		return keyPressed(cfg, next, ev.Key)

	case Hover:
		if next.Open && ev.Index >= 0 && ev.Index < len(next.Ranked()) {
			next.Active = ev.Index
		}
		return next, nil

	case Click:
		ranked := next.Ranked()
		if ev.Index < 0 || ev.Index >= len(ranked) {
			return next, nil
		}
		return commit(next, ranked[ev.Index])

	case OutsideClick:
		return closed(next), nil

	case Blur:
		if cfg.Optional {
			return closed(next), nil
		}
		return validateAndClose(cfg, next)

	case SetValue:
		next.Query = ev.Value
		if next.Open {
			next = resetActive(next)
		}
		return next, nil

	case SetCandidates:
		next.Candidates = ev.Candidates
		return resetActive(next), nil
	}

	return next, nil
}

func keyPressed(cfg Config, s State, key Key) (State, []Effect) {
	n := len(s.Ranked())
	switch key {
	case ArrowDown:
		s.Open = true
		if n == 0 {
			s.Active = -1
		} else if s.Active < 0 || s.Active >= n-1 {
			s.Active = 0
		} else {
			s.Active++
		}
		return s, nil

	case ArrowUp:
		s.Open = true
		if n == 0 {
			s.Active = -1
		} else if s.Active <= 0 || s.Active >= n {
			s.Active = n - 1
		} else {
			s.Active--
		}
		return s, nil

	case Enter:
		if s.Open {
			if v, ok := s.ActiveValue(); ok {
				return commit(s, v)
			}
		}
		return validateAndClose(cfg, s)

	case Escape:
		return closed(s), nil
	}
	return s, nil
}

// validateAndClose checks the text for exact membership in the full
// candidate list and closes the list.
func validateAndClose(cfg Config, s State) (State, []Effect) {
	if canonical, ok := s.Lookup(s.Query); ok {
		return commit(s, canonical)
	}
	s = closed(s)
	if !cfg.Optional {
		s.Err = cfg.requiredMessage()
	}
	return s, nil
}

func commit(s State, value string) (State, []Effect) {
	s.Query = value
	s.Err = ""
	return closed(s), []Effect{Selected{Value: value}}
}

func closed(s State) State {
	s.Open = false
	s.Active = -1
	return s
}

func resetActive(s State) State {
	if s.Open && len(s.Ranked()) > 0 {
		s.Active = 0
	} else {
		s.Active = -1
	}
	return s
}
