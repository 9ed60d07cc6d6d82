package trainer

import "github.com/neurlang/batchseq/net/feedforward"

// Resume loads previously checkpointed weights into the network when resume
// is requested and a model file is configured.
func Resume(net *feedforward.FeedforwardNetwork, resume bool, dstmodel string) {
	if resume && dstmodel != "" {
		if err := net.ReadCompressedWeightsFromFile(dstmodel); err != nil {
			println(err.Error())
		}
	}
}
