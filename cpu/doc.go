// Package cpu implements the x8000 virtual machine and the instruction set
// it shares with the assembler.
//
// The machine has 28 named 64-bit registers (IP, RK, RC, SP, R1-R8, RP1-RP8,
// RR1-RR8), each addressed by a one-byte code in 0xA0..0xBB, a LIFO call
// stack, and a byte-addressed program that is also the whole of its
// instruction memory. The binary format is headerless: byte 0 of the program
// is the first instruction. Multi-byte immediates and jump targets are always
// little-endian.
//
// The INT instruction crosses into the host: RK selects a syscall and
// RP1-RP8 carry its parameters. Memory addresses handed to and returned by
// syscalls are plain integers. With the default host memory model they are
// real host addresses and the machine performs no isolation of any kind;
// a program can read or write anything the host process can.
package cpu
