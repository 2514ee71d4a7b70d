package rooms

import "crypto/rand"

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength panjang kode room yang dibagikan antar peserta.
const CodeLength = 6

// NewCode generate kode acak uppercase-alphanumeric. Uniqueness dicek
// opportunistis lewat Registry.Create; tidak ada retry saat tabrakan
// (Create idempotent, room lama tetap dipakai).
func NewCode() (string, error) {
	b := make([]byte, CodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b), nil
}
