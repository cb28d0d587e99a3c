package corescope

import "testing"

func TestDecodeGregset_OrdersFieldsBySemanticName(t *testing.T) {
	var raw [27]uint64
	raw[0] = 0x15   // r15
	raw[4] = 0xbb   // rbp
	raw[10] = 0xaa  // rax
	raw[16] = 0x1234 // rip
	raw[19] = 0x7fff // rsp
	raw[26] = 0x99   // gs

	var reg []byte
	for _, v := range raw {
		reg = append(reg, byte(v), byte(v>>8), byte(v>>16), byte(v>>24), byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
	}

	got := decodeGregset(reg)
	if got.R15 != 0x15 {
		t.Errorf("r15 = %#x", got.R15)
	}
	if got.RBP != 0xbb {
		t.Errorf("rbp = %#x", got.RBP)
	}
	if got.RAX != 0xaa {
		t.Errorf("rax = %#x", got.RAX)
	}
	if got.RIP != 0x1234 {
		t.Errorf("rip = %#x", got.RIP)
	}
	if got.RSP != 0x7fff {
		t.Errorf("rsp = %#x", got.RSP)
	}
	if got.GS != 0x99 {
		t.Errorf("gs = %#x", got.GS)
	}
}

func TestRegisters_ToPtraceRegsAmd64(t *testing.T) {
	reg := Registers{RAX: 1, RIP: 2, RSP: 3, CS: 4}
	p := reg.ToPtraceRegsAmd64()
	if p.Rax != 1 || p.Rip != 2 || p.Rsp != 3 || p.Cs != 4 {
		t.Errorf("got %+v", p)
	}
}
