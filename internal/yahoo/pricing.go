package yahoo

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Tick is one decoded pricing message from the streaming feed, keyed by
// field name. Only fields present on the wire are set.
type Tick map[string]any

type wireKind int

const (
	kindString wireKind = iota
	kindFloat
	kindDouble
	kindSint64
	kindEnum
)

type pricingField struct {
	name string
	kind wireKind
}

// pricingFields maps PricingData field numbers to names and encodings.
var pricingFields = map[protowire.Number]pricingField{
	1:  {"id", kindString},
	2:  {"price", kindFloat},
	3:  {"time", kindSint64},
	4:  {"currency", kindString},
	5:  {"exchange", kindString},
	6:  {"quoteType", kindEnum},
	7:  {"marketHours", kindEnum},
	8:  {"changePercent", kindFloat},
	9:  {"dayVolume", kindSint64},
	10: {"dayHigh", kindFloat},
	11: {"dayLow", kindFloat},
	12: {"change", kindFloat},
	13: {"shortName", kindString},
	14: {"expireDate", kindSint64},
	15: {"openPrice", kindFloat},
	16: {"previousClose", kindFloat},
	17: {"strikePrice", kindFloat},
	18: {"underlyingSymbol", kindString},
	19: {"openInterest", kindSint64},
	20: {"optionsType", kindEnum},
	21: {"miniOption", kindSint64},
	22: {"lastSize", kindSint64},
	23: {"bid", kindFloat},
	24: {"bidSize", kindSint64},
	25: {"ask", kindFloat},
	26: {"askSize", kindSint64},
	27: {"priceHint", kindSint64},
	28: {"vol_24hr", kindSint64},
	29: {"volAllCurrencies", kindSint64},
	30: {"fromcurrency", kindString},
	31: {"lastMarket", kindString},
	32: {"circulatingSupply", kindDouble},
	33: {"marketcap", kindDouble},
}

// DecodePricing decodes a serialized PricingData message. Unknown fields
// are skipped.
func DecodePricing(b []byte) (Tick, error) {
	tick := make(Tick)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("decode pricing tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		f, known := pricingFields[num]
		if !known || !kindMatches(f.kind, typ) {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("decode pricing field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		switch f.kind {
		case kindString:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("decode pricing %s: %w", f.name, protowire.ParseError(n))
			}
			tick[f.name] = v
			b = b[n:]
		case kindFloat:
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return nil, fmt.Errorf("decode pricing %s: %w", f.name, protowire.ParseError(n))
			}
			tick[f.name] = float64(math.Float32frombits(v))
			b = b[n:]
		case kindDouble:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return nil, fmt.Errorf("decode pricing %s: %w", f.name, protowire.ParseError(n))
			}
			tick[f.name] = math.Float64frombits(v)
			b = b[n:]
		case kindSint64:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("decode pricing %s: %w", f.name, protowire.ParseError(n))
			}
			tick[f.name] = protowire.DecodeZigZag(v)
			b = b[n:]
		case kindEnum:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("decode pricing %s: %w", f.name, protowire.ParseError(n))
			}
			tick[f.name] = int32(v)
			b = b[n:]
		}
	}
	return tick, nil
}

func kindMatches(k wireKind, typ protowire.Type) bool {
	switch k {
	case kindString:
		return typ == protowire.BytesType
	case kindFloat:
		return typ == protowire.Fixed32Type
	case kindDouble:
		return typ == protowire.Fixed64Type
	default:
		return typ == protowire.VarintType
	}
}

// Time returns the tick timestamp in unix milliseconds.
func (t Tick) Time() (int64, bool) {
	ms, ok := t["time"].(int64)
	return ms, ok
}
