package game

import "testing"

func TestGenExplosion_LengthAndScale(t *testing.T) {
	small := genExplosion(0.5, 1)
	big := genExplosion(2.5, 1)
	if len(small)%bytesPerFrame != 0 || len(big)%bytesPerFrame != 0 {
		t.Fatal("buffers must hold whole stereo frames")
	}
	if len(big) <= len(small) {
		t.Fatalf("bigger explosions should ring longer: small=%d big=%d", len(small), len(big))
	}
}

func TestGenExplosion_ChannelsMatchAndNotSilent(t *testing.T) {
	pcm := genExplosion(1, 42)
	loud := 0
	for i := 0; i+3 < len(pcm); i += bytesPerFrame {
		if pcm[i] != pcm[i+2] || pcm[i+1] != pcm[i+3] {
			t.Fatalf("left and right differ at frame %d", i/bytesPerFrame)
		}
		v := int16(uint16(pcm[i]) | uint16(pcm[i+1])<<8)
		if v > 1000 || v < -1000 {
			loud++
		}
	}
	if loud == 0 {
		t.Fatal("explosion rendered silent")
	}
}

func TestSoftSat_Bounded(t *testing.T) {
	for _, x := range []float64{-10, -1.5, -1, 0, 0.5, 1, 3, 100} {
		if y := softSat(x); y < -1 || y > 1 {
			t.Fatalf("softSat(%v) = %v out of range", x, y)
		}
	}
}
