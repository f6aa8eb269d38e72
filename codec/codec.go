/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Wed Mar 18 09:05:17 2026 utkarsh
 * Last modified: Sat Aug 22 12:40:29 2026 utkarsh
 * Edit time:     88 min
 *
 */

// codec library is responsible for transforming data + additionalData
// to different kind of data. This means in practise either
// encrypting/decrypting, or compressing/uncompressing on case-by-case
// basis. History snapshots go through a chain of these on their way
// to a persist backend.
//
// CodecChain makes it possible to combine multiple Codecs that do the
// particular sub-EncodeBytes/DecodeBytes steps.
package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"log"

	"github.com/golang/snappy"
	"github.com/minio/sha256-simd"
	ucodec "github.com/ugorji/go/codec"
	"golang.org/x/crypto/pbkdf2"
)

// Codec
//
// Single transformation of byte slices.
type Codec interface {
	DecodeBytes(data, additionalData []byte) (ret []byte, err error)
	EncodeBytes(data, additionalData []byte) (ret []byte, err error)
}

var cborHandle ucodec.CborHandle

func cborEncode(v interface{}) (ret []byte, err error) {
	err = ucodec.NewEncoderBytes(&ret, &cborHandle).Encode(v)
	return
}

func cborDecode(data []byte, v interface{}) error {
	return ucodec.NewDecoderBytes(data, &cborHandle).Decode(v)
}

// EncryptedData is the frame EncryptingCodec wraps its output in.
type EncryptedData struct {
	Nonce         []byte
	EncryptedData []byte
}

// EncryptingCodec
//
// AES GCM based encrypting/decrypting (+authenticating) Codec.
type EncryptingCodec struct {
	gcm cipher.AEAD
	// Main key
	mk []byte
}

func (self EncryptingCodec) Init(password, salt []byte, iter int) *EncryptingCodec {
	self.mk = pbkdf2.Key(password, salt, iter, 32, sha256.New)
	block, err := aes.NewCipher(self.mk)
	if err != nil {
		log.Fatal(err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		log.Fatal(err)
	}
	self.gcm = gcm
	return &self
}

func (self *EncryptingCodec) DecodeBytes(data, additionalData []byte) (ret []byte, err error) {
	var ed EncryptedData
	err = cborDecode(data, &ed)
	if err != nil {
		return
	}
	ret, err = self.gcm.Open(nil, ed.Nonce, ed.EncryptedData, additionalData)
	return
}

func (self *EncryptingCodec) EncodeBytes(data, additionalData []byte) (ret []byte, err error) {
	nonce := make([]byte, self.gcm.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return
	}
	ciphertext := self.gcm.Seal(nil, nonce, data, additionalData)
	ed := EncryptedData{Nonce: nonce, EncryptedData: ciphertext}
	ret, err = cborEncode(&ed)
	return
}

const (
	compressionPlain = iota
	compressionSnappy
)

// CompressedData is the frame CompressingCodec wraps its output in.
type CompressedData struct {
	CompressionType int
	RawData         []byte
}

// CompressingCodec
//
// On-the-fly compressing Codec. If the result does not improve, the
// result is marked to be plaintext and passed as-is (at cost of the
// frame overhead).
type CompressingCodec struct {
}

func (self *CompressingCodec) DecodeBytes(data, additionalData []byte) (ret []byte, err error) {
	var cd CompressedData
	err = cborDecode(data, &cd)
	if err != nil {
		return
	}
	switch cd.CompressionType {
	case compressionPlain:
		ret = cd.RawData
	case compressionSnappy:
		ret, err = snappy.Decode(nil, cd.RawData)
	default:
		err = errors.New("unknown compression type")
	}
	return
}

func (self *CompressingCodec) EncodeBytes(data, additionalData []byte) (ret []byte, err error) {
	rd := snappy.Encode(nil, data)
	ct := compressionSnappy
	if len(rd) >= len(data) {
		ct = compressionPlain
		rd = data
	}
	cd := CompressedData{CompressionType: ct, RawData: rd}
	ret, err = cborEncode(&cd)
	return
}

type CodecChain struct {
	codecs, reverseCodecs []Codec
}

// Init method initializes the codec chain.
//
// codecs are given in decryption order, so e.g.
// encrypting one should be given before compressing one.
func (self CodecChain) Init(codecs ...Codec) *CodecChain {
	self.codecs = codecs
	// Reverse the codec slice for decryption purposes
	rc := make([]Codec, len(codecs))
	for i, c := range codecs {
		rc[len(codecs)-i-1] = c
	}
	self.reverseCodecs = rc
	return &self
}

func (self *CodecChain) DecodeBytes(data, additionalData []byte) (ret []byte, err error) {
	ret = data
	for _, c := range self.codecs {
		ret, err = c.DecodeBytes(data, additionalData)
		if err != nil {
			return
		}
		data = ret
	}
	return
}

func (self *CodecChain) EncodeBytes(data, additionalData []byte) (ret []byte, err error) {
	ret = data
	for _, c := range self.reverseCodecs {
		ret, err = c.EncodeBytes(data, additionalData)
		if err != nil {
			return
		}
		data = ret
	}
	return
}
