// SPDX-FileCopyrightText: 2021 The serialize Authors
//
// SPDX-License-Identifier: MIT

package json

import "github.com/ssbc/serialize"

// animal is either Dog or Frog(name, age).
type animal struct {
	frog *frog
}

type frog struct {
	name string
	age  int
}

var dog = animal{}

func newFrog(name string, age int) animal {
	return animal{frog: &frog{name: name, age: age}}
}

func (a animal) Encode(e serialize.Encoder) error {
	return e.EmitEnum("Animal", func(e serialize.Encoder) error {
		if a.frog == nil {
			return e.EmitEnumVariant("Dog", 0, 0, func(serialize.Encoder) error { return nil })
		}
		return e.EmitEnumVariant("Frog", 1, 2, func(e serialize.Encoder) error {
			err := e.EmitEnumVariantArg(0, func(e serialize.Encoder) error {
				return e.EmitString(a.frog.name)
			})
			if err != nil {
				return err
			}
			return e.EmitEnumVariantArg(1, func(e serialize.Encoder) error {
				return e.EmitInt(int64(a.frog.age))
			})
		})
	})
}

func (a *animal) Decode(d serialize.Decoder) error {
	return d.ReadEnum("Animal", func(d serialize.Decoder) error {
		return d.ReadEnumVariant([]string{"Dog", "Frog"}, func(d serialize.Decoder, idx int) error {
			if idx == 0 {
				a.frog = nil
				return nil
			}

			var f frog
			err := d.ReadEnumVariantArg(0, func(d serialize.Decoder) (err error) {
				f.name, err = d.ReadString()
				return err
			})
			if err != nil {
				return err
			}
			err = d.ReadEnumVariantArg(1, func(d serialize.Decoder) error {
				age, err := d.ReadInt(0)
				f.age = int(age)
				return err
			})
			if err != nil {
				return err
			}
			a.frog = &f
			return nil
		})
	})
}
