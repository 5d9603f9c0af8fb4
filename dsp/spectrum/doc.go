// Package spectrum measures the frequency content of filtered signals.
//
// [Analyze] computes a one-sided magnitude spectrum of a real signal with an
// FFT (zero-padded to a power of two, optionally windowed) and answers peak
// and level queries on it. [Goertzel] evaluates single frequencies exactly,
// which suits checking the attenuation of known tones without bin leakage.
package spectrum
