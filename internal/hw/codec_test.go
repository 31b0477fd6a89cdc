package hw

import (
	"reflect"
	"testing"
)

// TestCodecRoundTrip exercises spec.md §8 property 5: decode(encode(x)) ==
// x byte-for-byte, for every command kind. Response kinds are decoded
// through ResponseDecoder in the tests below.
func TestCodecRoundTrip(t *testing.T) {
	wc := WriteClauseCmd{CID: 42, Size: 3, Sat: 0, Literals: [5]uint16{3, 4, 7, 0, 0}}
	if got, err := DecodeWriteClauseCmd(wc.Encode()); err != nil || got != wc {
		t.Fatalf("WriteClauseCmd round-trip: got %+v, err %v, want %+v", got, err, wc)
	}

	we := WriteWLEntryCmd{Lit: 17, Idx: 2, CID: 5}
	if got, err := DecodeWriteWLEntryCmd(we.Encode()); err != nil || got != we {
		t.Fatalf("WriteWLEntryCmd round-trip: got %+v, err %v, want %+v", got, err, we)
	}

	wl := WriteWLLenCmd{Lit: 17, Len: 3}
	if got, err := DecodeWriteWLLenCmd(wl.Encode()); err != nil || got != wl {
		t.Fatalf("WriteWLLenCmd round-trip: got %+v, err %v, want %+v", got, err, wl)
	}

	wa := WriteAssignCmd{Var: 9, Val: 2}
	if got, err := DecodeWriteAssignCmd(wa.Encode()); err != nil || got != wa {
		t.Fatalf("WriteAssignCmd round-trip: got %+v, err %v, want %+v", got, err, wa)
	}

	bs := BCPStartCmd{FalseLit: 11}
	if got, err := DecodeBCPStartCmd(bs.Encode()); err != nil || got != bs {
		t.Fatalf("BCPStartCmd round-trip: got %+v, err %v, want %+v", got, err, bs)
	}

	if got, err := DecodeResetStateCmd(ResetStateCmd{}.Encode()); err != nil || got != (ResetStateCmd{}) {
		t.Fatalf("ResetStateCmd round-trip: got %+v, err %v", got, err)
	}
}

func TestResponseDecoderImplicationAndDone(t *testing.T) {
	var d ResponseDecoder

	imp := ImplicationResp{Var: 2, Val: 2, Reason: 0}
	done := DoneResp{Conflict: false, ClauseID: 0}

	stream := append(imp.Encode(), done.Encode()...)
	got, err := d.Feed(stream)
	if err != nil {
		t.Fatalf("Feed returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Feed returned %d responses, want 2", len(got))
	}
	if got[0].Implication == nil || *got[0].Implication != imp {
		t.Fatalf("first response = %+v, want implication %+v", got[0], imp)
	}
	if got[1].Done == nil || *got[1].Done != done {
		t.Fatalf("second response = %+v, want done %+v", got[1], done)
	}
}

func TestResponseDecoderByteAtATime(t *testing.T) {
	var d ResponseDecoder
	conflictDone := DoneResp{Conflict: true, ClauseID: 7}
	encoded := conflictDone.Encode()

	var all []Response
	for _, b := range encoded {
		got, err := d.Feed([]byte{b})
		if err != nil {
			t.Fatalf("Feed returned error: %v", err)
		}
		all = append(all, got...)
	}
	if len(all) != 1 || all[0].Done == nil || !reflect.DeepEqual(*all[0].Done, conflictDone) {
		t.Fatalf("byte-at-a-time feed = %+v, want one done response %+v", all, conflictDone)
	}
}

func TestResponseDecoderRejectsUnknownTag(t *testing.T) {
	var d ResponseDecoder
	_, err := d.Feed([]byte{0xFF})
	var frameErr *ProtocolFramingError
	if err == nil {
		t.Fatalf("expected a ProtocolFramingError for an unknown tag byte")
	}
	if ok := asProtocolFramingError(err, &frameErr); !ok {
		t.Fatalf("error %v is not a *ProtocolFramingError", err)
	}
}

func asProtocolFramingError(err error, target **ProtocolFramingError) bool {
	if pfe, ok := err.(*ProtocolFramingError); ok {
		*target = pfe
		return true
	}
	return false
}
