// Package receiver implements the UDP command receive loop for the Motion
// Control Container.
//
// The receiver binds one datagram socket, blocks on it for the process
// lifetime, and hands each decoded payload to the command dispatcher. The
// protocol is fire-and-forget: no response is ever sent to the sender, and
// no state survives between datagrams. In strict parsing mode a non-numeric
// speed token or non-UTF-8 payload aborts the loop, reproducing the
// reference behavior of the original control script.
package receiver
