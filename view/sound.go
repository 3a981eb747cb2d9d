package view

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
)

const (
	sampleRate = 22050
	toneHz     = 440.0
	toneMS     = 120
	gapMS      = 60
)

var alertWAV = sync.OnceValue(func() []byte {
	return encodeWAV(alertSamples())
})

// AlertWAV returns the failure cue: two short descending beeps as 16-bit mono PCM
func AlertWAV() []byte {
	return alertWAV()
}

func alertSamples() []int16 {
	tone := sampleRate * toneMS / 1000
	gap := sampleRate * gapMS / 1000
	samples := make([]int16, 0, 2*tone+gap)

	for i, hz := range []float64{toneHz * 2, toneHz} {
		if i > 0 {
			samples = append(samples, make([]int16, gap)...)
		}
		for n := 0; n < tone; n++ {
			// linear fade out to avoid a click at the end of each beep
			env := 1 - float64(n)/float64(tone)
			v := math.Sin(2*math.Pi*hz*float64(n)/sampleRate) * env * 0.5
			samples = append(samples, int16(v*math.MaxInt16))
		}
	}
	return samples
}

func encodeWAV(samples []int16) []byte {
	dataLen := uint32(len(samples) * 2)
	var buf bytes.Buffer

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))           // chunk size
	binary.Write(&buf, binary.LittleEndian, uint16(1))            // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1))            // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))   // sample rate
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2)) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))            // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))           // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	binary.Write(&buf, binary.LittleEndian, samples)

	return buf.Bytes()
}
