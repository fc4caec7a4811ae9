package aavso

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/carbocation/lightcurve/photometry"
)

// syntheticTable renders a table in which two observers follow the same
// fading source with a 0.3 magnitude zero-point difference, and a third
// contributes too few points to be merged.
func syntheticTable() string {
	var sb strings.Builder
	sb.WriteString("JD,Magnitude,Uncertainty,Band,Observer Code\n")

	source := func(jd float64) float64 {
		return 0.05*(jd-100) + 0.02*math.Sin(1.7*jd)
	}
	write := func(observer string, lo, hi float64, n int, zeroPoint float64) {
		for i := 0; i < n; i++ {
			jd := lo + (hi-lo)*float64(i)/float64(n-1)
			fmt.Fprintf(&sb, "%v,%v,0.01,V,%s\n", jd, zeroPoint+source(jd), observer)
		}
	}
	write("AAA", 100, 110, 12, 10.0)
	write("BBB", 105, 120, 15, 10.3)
	write("CCC", 101, 118, 8, 9.8)
	sb.WriteString("112,<14.0,,V,AAA\n")

	return sb.String()
}

func runOnce(t *testing.T) (composite, offsets []byte) {
	records, err := ReadRecords(strings.NewReader(syntheticTable()))
	if err != nil {
		t.Fatal(err)
	}

	res, err := photometry.Run(context.Background(), records, photometry.DefaultParams("V"), nil)
	if err != nil {
		t.Fatal(err)
	}

	var c, o bytes.Buffer
	if err := WriteComposite(&c, res.Composite); err != nil {
		t.Fatal(err)
	}
	if err := WriteOffsetLog(&o, res.Offsets); err != nil {
		t.Fatal(err)
	}

	return c.Bytes(), o.Bytes()
}

func TestEndToEndIsByteIdentical(t *testing.T) {
	c1, o1 := runOnce(t)
	c2, o2 := runOnce(t)

	if !bytes.Equal(c1, c2) {
		t.Fatalf("Composite output differs between runs")
	}
	if !bytes.Equal(o1, o2) {
		t.Fatalf("Offset log differs between runs")
	}

	// Header plus 27 points; CCC never appears.
	if lines := strings.Count(string(c1), "\n"); lines != 28 {
		t.Fatalf("Expected 28 composite lines, got %d", lines)
	}
	if strings.Contains(string(c1), "CCC") || strings.Contains(string(o1), "CCC") {
		t.Fatalf("Observer CCC has too few observations to appear in the output")
	}
	if !strings.HasPrefix(string(o1), "Observer Code,Number of Observations,Offset\nBBB,15,0\nAAA,12,") {
		t.Fatalf("Unexpected offset log:\n%s", o1)
	}
}
