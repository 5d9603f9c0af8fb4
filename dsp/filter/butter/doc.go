// Package butter designs digital Butterworth filters and applies them to
// sampled signals.
//
// [Design] produces the transfer-function coefficients (b, a) of a lowpass,
// highpass or bandpass Butterworth filter. The band type follows from which
// cutoffs are supplied:
//
//	WithHighCut only          -> Lowpass
//	WithLowCut only           -> Highpass
//	WithLowCut + WithHighCut  -> Bandpass
//
// The design starts from the analog prototype (poles evenly spaced on the
// left half of the unit circle), pre-warps the band edges with tan(), maps
// the prototype onto the requested band in zero-pole-gain form and converts it
// to the z-domain with the bilinear transform. Lowpass and highpass designs
// have Order+1 coefficients, bandpass designs 2*Order+1.
//
// Coefficients are returned in direct (polynomial) form, which loses
// precision quickly as poles crowd towards z = 1. Bandpass designs whose band
// sits low relative to the sample rate degrade from about order 8 (500-4000 Hz
// at 48 kHz already rounds to an unstable polynomial), and orders above
// roughly 12 with narrow ranges fail at any rate. [DesignZPK] keeps the exact
// poles; [Coefficients.Stable] reports whether the rounded
// polynomial still has all poles inside the unit circle. This is a property of
// the representation and is reported, not hidden.
//
// [Filter] is the one-shot convenience: design, then run the coefficients
// over a signal with [iir.Apply].
package butter
