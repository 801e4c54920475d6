package lnd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lightningnetwork/lnd/lnwire"
)

// ParseShortChannelID accepts the BLOCKxTXxOUT notation as well as the packed
// decimal form lnd uses for channel ids.
func ParseShortChannelID(s string) (lnwire.ShortChannelID, error) {
	parts := strings.Split(s, "x")
	if len(parts) == 1 {
		packed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return lnwire.ShortChannelID{}, fmt.Errorf("invalid short channel id %q", s)
		}
		return lnwire.NewShortChanIDFromInt(packed), nil
	}
	if len(parts) != 3 {
		return lnwire.ShortChannelID{}, fmt.Errorf("invalid short channel id %q", s)
	}
	block, err := strconv.ParseUint(parts[0], 10, 24)
	if err != nil {
		return lnwire.ShortChannelID{}, fmt.Errorf("invalid block height in short channel id %q", s)
	}
	txIndex, err := strconv.ParseUint(parts[1], 10, 24)
	if err != nil {
		return lnwire.ShortChannelID{}, fmt.Errorf("invalid tx index in short channel id %q", s)
	}
	outIndex, err := strconv.ParseUint(parts[2], 10, 16)
	if err != nil {
		return lnwire.ShortChannelID{}, fmt.Errorf("invalid output index in short channel id %q", s)
	}
	return lnwire.ShortChannelID{
		BlockHeight: uint32(block),
		TxIndex:     uint32(txIndex),
		TxPosition:  uint16(outIndex),
	}, nil
}

func FormatShortChannelID(scid lnwire.ShortChannelID) string {
	return fmt.Sprintf("%dx%dx%d", scid.BlockHeight, scid.TxIndex, scid.TxPosition)
}
