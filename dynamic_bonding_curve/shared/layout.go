package shared

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// MarshalWithEncoder writes the config in the ledger's fixed account layout.
// The curve always occupies MaxCurvePoint slots; unused slots are zero.
func (obj ConfigParameters) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if len(obj.Curve) > MaxCurvePoint {
		return fmt.Errorf("curve has %d segments, layout holds %d: %w", len(obj.Curve), MaxCurvePoint, ErrInvalidPriceDomain)
	}
	fields := []interface{}{
		obj.PoolFees.BaseFee.CliffFeeNumerator,
		obj.PoolFees.BaseFee.FirstFactor,
		obj.PoolFees.BaseFee.SecondFactor,
		obj.PoolFees.BaseFee.ThirdFactor,
		obj.PoolFees.BaseFee.BaseFeeMode,
		obj.CollectFeeMode,
		obj.MigrationOption,
		obj.ActivationType,
		obj.TokenDecimal,
		obj.MigrationQuoteThreshold,
		obj.SqrtStartPrice,
		obj.MigrationSqrtPrice,
		obj.LockedVesting.AmountPerPeriod,
		obj.LockedVesting.CliffDurationFromMigrationTime,
		obj.LockedVesting.Frequency,
		obj.LockedVesting.NumberOfPeriod,
		obj.LockedVesting.CliffUnlockAmount,
		obj.MigrationFee.FeePercentage,
		obj.MigrationFee.CreatorFeePercentage,
		obj.TokenSupply.PreMigrationTokenSupply,
		obj.TokenSupply.PostMigrationTokenSupply,
		obj.Leftover,
		obj.SwapBufferPercentage,
	}
	for _, f := range fields {
		if err = encoder.Encode(f); err != nil {
			return err
		}
	}
	for i := 0; i < MaxCurvePoint; i++ {
		point := LiquidityDistributionParameters{}
		if i < len(obj.Curve) {
			point = obj.Curve[i]
		}
		if err = encoder.Encode(point.SqrtPrice); err != nil {
			return err
		}
		if err = encoder.Encode(point.Liquidity); err != nil {
			return err
		}
	}
	return nil
}

func (obj ConfigParameters) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := obj.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("error while encoding ConfigParameters: %w", err)
	}
	return buf.Bytes(), nil
}

func (obj *ConfigParameters) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	fields := []interface{}{
		&obj.PoolFees.BaseFee.CliffFeeNumerator,
		&obj.PoolFees.BaseFee.FirstFactor,
		&obj.PoolFees.BaseFee.SecondFactor,
		&obj.PoolFees.BaseFee.ThirdFactor,
		&obj.PoolFees.BaseFee.BaseFeeMode,
		&obj.CollectFeeMode,
		&obj.MigrationOption,
		&obj.ActivationType,
		&obj.TokenDecimal,
		&obj.MigrationQuoteThreshold,
		&obj.SqrtStartPrice,
		&obj.MigrationSqrtPrice,
		&obj.LockedVesting.AmountPerPeriod,
		&obj.LockedVesting.CliffDurationFromMigrationTime,
		&obj.LockedVesting.Frequency,
		&obj.LockedVesting.NumberOfPeriod,
		&obj.LockedVesting.CliffUnlockAmount,
		&obj.MigrationFee.FeePercentage,
		&obj.MigrationFee.CreatorFeePercentage,
		&obj.TokenSupply.PreMigrationTokenSupply,
		&obj.TokenSupply.PostMigrationTokenSupply,
		&obj.Leftover,
		&obj.SwapBufferPercentage,
	}
	for _, f := range fields {
		if err = decoder.Decode(f); err != nil {
			return err
		}
	}
	obj.Curve = obj.Curve[:0]
	for i := 0; i < MaxCurvePoint; i++ {
		var point LiquidityDistributionParameters
		if err = decoder.Decode(&point.SqrtPrice); err != nil {
			return err
		}
		if err = decoder.Decode(&point.Liquidity); err != nil {
			return err
		}
		if point.SqrtPrice.BigInt().Sign() == 0 {
			continue
		}
		obj.Curve = append(obj.Curve, point)
	}
	return nil
}

func UnmarshalConfigParameters(data []byte) (ConfigParameters, error) {
	var out ConfigParameters
	if err := out.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return ConfigParameters{}, fmt.Errorf("error while decoding ConfigParameters: %w", err)
	}
	return out, nil
}
