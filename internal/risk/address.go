package risk

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// NormalizeAddr validates an EVM contract address and returns it in the
// lowercase form the security provider keys its results by. Mixed-case
// input must carry a valid EIP-55 checksum; all-lower/all-upper input is
// accepted as unchecksummed.
func NormalizeAddr(addr string) (string, error) {
	a := strings.TrimSpace(addr)
	if strings.HasPrefix(a, "0x") || strings.HasPrefix(a, "0X") {
		a = a[2:]
	}
	if len(a) != 40 {
		return "", fmt.Errorf("bad hex length: %d", len(a))
	}
	if _, err := hex.DecodeString(a); err != nil {
		return "", fmt.Errorf("not hex: %w", err)
	}

	lower := strings.ToLower(a)
	if a != lower && a != strings.ToUpper(a) {
		if want := checksumHex(lower); a != want {
			return "", fmt.Errorf("checksum mismatch")
		}
	}
	return "0x" + lower, nil
}

// checksumHex produces the EIP-55 mixed-case form of a lowercase 40-char
// hex string (no 0x prefix).
func checksumHex(lower string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	hash := h.Sum(nil)
	hexhash := make([]byte, 64)
	hex.Encode(hexhash, hash)

	out := make([]byte, 40)
	for i := 0; i < 40; i++ {
		ch := lower[i]
		if ch >= 'a' && ch <= 'f' {
			var nibble byte
			if hexhash[i] >= '0' && hexhash[i] <= '9' {
				nibble = hexhash[i] - '0'
			} else {
				nibble = 10 + (hexhash[i] - 'a')
			}
			if nibble >= 8 {
				ch -= 'a' - 'A'
			}
		}
		out[i] = ch
	}
	return string(out)
}
