// Package iir applies linear constant-coefficient recursive filters to
// sampled signals.
//
// A filter is described by numerator coefficients b and denominator
// coefficients a in ascending powers of z^-1:
//
//	        b[0] + b[1] z^-1 + ... + b[M] z^-M
//	H(z) = -----------------------------------
//	        a[0] + a[1] z^-1 + ... + a[N] z^-N
//
// [Apply] evaluates the matching difference equation
//
//	y[n] = (sum_i b[i] x[n-i] - sum_{j>=1} a[j] y[n-j]) / a[0]
//
// sample by sample with zero initial conditions, using the transposed direct
// form II structure. Every call owns its delay line; nothing is carried
// between calls, so independent signals may be filtered concurrently.
//
// Coefficients describing an unstable filter (poles on or outside the unit
// circle) produce outputs that grow without bound. Choosing a stable design is
// the caller's responsibility; [IsStable] reports the pole radius check and
// [Apply] refuses to return non-finite samples.
package iir
