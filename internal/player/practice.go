package player

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Token is one word of a practice word bank.
type Token struct {
	Word string
	Used bool
}

// Practice is the state of a word-bank exercise.
type Practice struct {
	Bank []Token
	// Selected holds indexes into Bank in the order they were picked.
	Selected []int
	Checked  bool
	Correct  bool
	// Expected is the correct sentence, for showing after a wrong check.
	Expected string
}

func newPractice(words []string, expected string, shuffle func([]string) []string) *Practice {
	shuffled := shuffle(slices.Clone(words))
	return &Practice{
		Bank: lo.Map(shuffled, func(w string, _ int) Token {
			return Token{Word: w}
		}),
		Expected: expected,
	}
}

// Sentence joins the selected words with single spaces.
func (p *Practice) Sentence() string {
	return strings.Join(lo.Map(p.Selected, func(i int, _ int) string {
		return p.Bank[i].Word
	}), " ")
}

func (p *Practice) pick(i int) bool {
	if p.Checked || i < 0 || i >= len(p.Bank) || p.Bank[i].Used {
		return false
	}
	p.Bank[i].Used = true
	p.Selected = append(p.Selected, i)
	return true
}

// remove takes the word at position pos of the sentence back to the bank.
func (p *Practice) remove(pos int) bool {
	if p.Checked || pos < 0 || pos >= len(p.Selected) {
		return false
	}
	p.Bank[p.Selected[pos]].Used = false
	p.Selected = slices.Delete(p.Selected, pos, pos+1)
	return true
}

// check compares the sentence exactly, without trimming or case folding.
func (p *Practice) check() bool {
	p.Checked = true
	p.Correct = p.Sentence() == p.Expected
	return p.Correct
}

func (p *Practice) clone() Practice {
	c := *p
	c.Bank = slices.Clone(p.Bank)
	c.Selected = slices.Clone(p.Selected)
	return c
}

func defaultShuffle(words []string) []string {
	return lo.Shuffle(words)
}
