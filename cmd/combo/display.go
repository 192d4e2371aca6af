package main

import (
	"fmt"

	"github.com/npillmayer/combo"
	"github.com/pterm/pterm"
)

// resultTree converts a parsed token into a tree for display.
func resultTree(tok *combo.ParsedToken) pterm.TreeNode {
	ll := leveledToken(tok, pterm.LeveledList{}, 0)
	return pterm.NewTreeFromLeveledList(ll)
}

func leveledToken(tok *combo.ParsedToken, ll pterm.LeveledList, level int) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: tokenLabel(tok)})
	if tok != nil && tok.Type == combo.TTSequence {
		for _, t := range tok.Seq {
			ll = leveledToken(t, ll, level+1)
		}
	}
	return ll
}

func tokenLabel(tok *combo.ParsedToken) string {
	if tok == nil {
		return "nil"
	}
	pos := fmt.Sprintf("@%d", tok.Index)
	if tok.BitOffset != 0 {
		pos += fmt.Sprintf(".%d", tok.BitOffset)
	}
	switch tok.Type {
	case combo.TTSequence:
		return fmt.Sprintf("seq[%d] %s", len(tok.Seq), pos)
	case combo.TTUInt:
		if tok.UInt >= 0x20 && tok.UInt < 0x7f {
			return fmt.Sprintf("%s '%c' %s", combo.Unamb(tok), rune(tok.UInt), pos)
		}
	case combo.TTBytes:
		return fmt.Sprintf("%s %q %s", combo.Unamb(tok), tok.Bytes, pos)
	}
	return combo.Unamb(tok) + " " + pos
}
