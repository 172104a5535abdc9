package flate

// Fixed Huffman tables from RFC 1951 §3.2.6, built through the same
// canonical builder used for dynamic blocks rather than a closed-form
// bit-range decode, so there is exactly one code path to keep correct.
var (
	fixedLitLenTable *huffmanTable
	fixedDistTable   *huffmanTable
)

func init() {
	lengths := make([]int, 288)
	for i := 0; i <= 143; i++ {
		lengths[i] = 8
	}
	for i := 144; i <= 255; i++ {
		lengths[i] = 9
	}
	for i := 256; i <= 279; i++ {
		lengths[i] = 7
	}
	for i := 280; i <= 287; i++ {
		lengths[i] = 8
	}
	t, err := buildHuffmanTable(lengths)
	if err != nil {
		panic("flate: invalid fixed litlen table: " + err.Error())
	}
	fixedLitLenTable = t

	distLengths := make([]int, 32)
	for i := range distLengths {
		distLengths[i] = 5
	}
	dt, err := buildHuffmanTable(distLengths)
	if err != nil {
		panic("flate: invalid fixed distance table: " + err.Error())
	}
	fixedDistTable = dt
}
