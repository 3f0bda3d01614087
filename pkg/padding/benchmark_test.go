//go:build !verifyonly

package padding

import (
	"testing"
)

var benchMessage = make([]byte, 1024)

func benchmarkEncode(b *testing.B, s Encoder, bitLen int) {
	out := make([]byte, (bitLen+7)/8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Encode(benchMessage, out, bitLen, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkVerify(b *testing.B, s Encoder, bitLen int) {
	em := make([]byte, (bitLen+7)/8)
	if err := s.Encode(benchMessage, em, bitLen, nil); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Verify(benchMessage, em, bitLen); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPKCS1SHA256_Encode_2048(b *testing.B) { benchmarkEncode(b, PKCS1SHA256, 2048) }
func BenchmarkPKCS1SHA256_Verify_2048(b *testing.B) { benchmarkVerify(b, PKCS1SHA256, 2048) }
func BenchmarkPSSSHA256_Encode_2048(b *testing.B)   { benchmarkEncode(b, PSSSHA256, 2048) }
func BenchmarkPSSSHA256_Verify_2048(b *testing.B)   { benchmarkVerify(b, PSSSHA256, 2048) }
func BenchmarkPSSSHA512_Encode_4096(b *testing.B)   { benchmarkEncode(b, PSSSHA512, 4096) }
func BenchmarkPSSSHA512_Verify_4096(b *testing.B)   { benchmarkVerify(b, PSSSHA512, 4096) }
func BenchmarkPSSSHA3_512_Encode_8192(b *testing.B) { benchmarkEncode(b, PSSSHA3_512, 8192) }
