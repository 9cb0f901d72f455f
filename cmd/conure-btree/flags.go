package main

import (
	"flag"
	"strconv"
)

// settableBool is a boolean flag that remembers whether it was given
type settableBool struct {
	set bool
	val bool
}

func (b *settableBool) Set(s string) error {
	b.set = true
	if s == "" {
		b.val = true
		return nil
	}
	v, err := parseBool(s)
	if err != nil {
		return err
	}
	b.val = v
	return nil
}

func (b *settableBool) String() string {
	if b == nil || !b.set {
		return "false"
	}
	return strconv.FormatBool(b.val)
}

func (b *settableBool) IsBoolFlag() bool { return true }

func parseBool(s string) (bool, error) {
	switch s {
	case "1", "t", "T", "true", "TRUE", "True":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False":
		return false, nil
	default:
		return false, flag.ErrHelp
	}
}

// settableInt is an integer flag that remembers whether it was given
type settableInt struct {
	set bool
	val int
}

func (i *settableInt) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	i.set = true
	i.val = v
	return nil
}

func (i *settableInt) String() string {
	if i == nil || !i.set {
		return "0"
	}
	return strconv.Itoa(i.val)
}
