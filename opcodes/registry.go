package opcodes

import "github.com/loomswap/arbcore/entities"

// Registry maps a pool's class to the encoder that knows its opcode shape,
// resolved once at startup the way the source's commented-out
// opcodes_encoders_map construction in SwapLineEncoder::new intended.
type Registry struct {
	byClass map[entities.PoolClass]SwapOpcodesEncoder
}

// NewRegistry builds the default registry covering every supported class.
func NewRegistry() *Registry {
	uni2 := UniswapV2SwapOpcodesEncoder{}
	uni3 := UniswapV3SwapOpcodesEncoder{}
	curve := CurveSwapOpcodesEncoder{}

	return &Registry{byClass: map[entities.PoolClass]SwapOpcodesEncoder{
		entities.PoolClassUniswapV2:  uni2,
		entities.PoolClassUniswapV3:  uni3,
		entities.PoolClassMaverick:   uni3,
		entities.PoolClassPancakeV3:  uni3,
		entities.PoolClassCurve:      curve,
		entities.PoolClassLidoWstEth: WstEthSwapOpcodesEncoder{},
		entities.PoolClassLidoStEth:  StEthSwapOpcodesEncoder{},
	}}
}

// For returns the encoder registered for class, or (nil, false) if the
// class has none (the caller should surface entities.ErrUnsupportedPoolClass).
func (r *Registry) For(class entities.PoolClass) (SwapOpcodesEncoder, bool) {
	enc, ok := r.byClass[class]
	return enc, ok
}
