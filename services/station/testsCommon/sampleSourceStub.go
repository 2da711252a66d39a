package testsCommon

import "github.com/iulianpascalau/weather-station/services/station/common"

// SampleSourceStub -
type SampleSourceStub struct {
	ReadHandler func() common.Sample
}

// Read -
func (stub *SampleSourceStub) Read() common.Sample {
	if stub.ReadHandler != nil {
		return stub.ReadHandler()
	}

	return common.Sample{}
}

// IsInterfaceNil -
func (stub *SampleSourceStub) IsInterfaceNil() bool {
	return stub == nil
}

// NewSequenceSourceStub returns a stub that replays the provided samples, repeating the last one when exhausted
func NewSequenceSourceStub(samples ...common.Sample) *SampleSourceStub {
	index := 0
	return &SampleSourceStub{
		ReadHandler: func() common.Sample {
			if len(samples) == 0 {
				return common.Sample{}
			}
			if index >= len(samples) {
				return samples[len(samples)-1]
			}

			sample := samples[index]
			index++

			return sample
		},
	}
}
