// Package x64lookup finds x64 mnemonics and their definitions by name.
package x64lookup

import (
	"github.com/imlyzh/emei/x64"
)

const maxMnemonicLength = 16

var mnemonicMap = buildMnemonicMap()

func buildMnemonicMap() map[string]x64.Mnemonic {
	m := make(map[string]x64.Mnemonic)
	for _, mn := range x64.AllMnemonics() {
		m[mn.Name()] = mn
	}
	for name, mn := range aliases {
		m[name] = mn
	}
	return m
}

// Alternate names for conditional mnemonics.
var aliases = map[string]x64.Mnemonic{
	"JC": x64.JC, "JNAE": x64.JNAE, "JAE": x64.JAE, "JNC": x64.JNC, "JE": x64.JE, "JNE": x64.JNE,
	"JNA": x64.JNA, "JA": x64.JA, "JPE": x64.JPE, "JPO": x64.JPO, "JNGE": x64.JNGE, "JGE": x64.JGE,
	"JNG": x64.JNG, "JG": x64.JG,
	"SETC": x64.SETC, "SETNAE": x64.SETNAE, "SETAE": x64.SETAE, "SETNC": x64.SETNC, "SETE": x64.SETE,
	"SETNE": x64.SETNE, "SETNA": x64.SETNA, "SETA": x64.SETA, "SETPE": x64.SETPE, "SETPO": x64.SETPO,
	"SETNGE": x64.SETNGE, "SETGE": x64.SETGE, "SETNG": x64.SETNG, "SETG": x64.SETG,
	"CMOVC": x64.CMOVC, "CMOVNAE": x64.CMOVNAE, "CMOVAE": x64.CMOVAE, "CMOVNC": x64.CMOVNC,
	"CMOVE": x64.CMOVE, "CMOVNE": x64.CMOVNE, "CMOVNA": x64.CMOVNA, "CMOVA": x64.CMOVA,
	"CMOVPE": x64.CMOVPE, "CMOVPO": x64.CMOVPO, "CMOVNGE": x64.CMOVNGE, "CMOVGE": x64.CMOVGE,
	"CMOVNG": x64.CMOVNG, "CMOVG": x64.CMOVG,
}

// Lookup the mnemonic for a name. The name will be converted to uppercase if necessary.
func Mnemonic(name string) (x64.Mnemonic, bool) {
	if len(name) == 0 || len(name) >= maxMnemonicLength {
		return 0, false
	}
	m, ok := mnemonicMap[upperCase(name)]
	return m, ok
}

// Lookup the definitions for a mnemonic name, in the order they are matched.
func Defs(name string) []x64.Def {
	if m, ok := Mnemonic(name); ok {
		return x64.Defs(m)
	}
	return nil
}

func upperCase(s string) string {
	var b [maxMnemonicLength]byte
	var ch byte
	_ = b[len(s)] // lift bounds-checks out of the loop below (golang.org/issue/14808)
	i, changed := 0, false
loop: // functions containing for-loops cannot currently be inlined (golang.org/issue/14768)
	ch = s[i]
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
		changed = true
	}
	b[i] = ch
	i++
	if i < len(s) {
		goto loop
	}
	if !changed {
		return s
	}
	return string(b[:len(s)])
}
