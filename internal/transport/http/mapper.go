package http

import (
	"encoding/json"

	"github.com/vovakirdan/wirecast-server/internal/core"
	"github.com/vovakirdan/wirecast-server/internal/proto"
)

// inboundToCommand maps a wire envelope to a coordinator command. A nil
// command with a nil error means the envelope should be ignored.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeCreateRoom:
		var create proto.CreateRoomData
		if len(inbound.Data) > 0 {
			if err := json.Unmarshal(inbound.Data, &create); err != nil {
				return nil, nil, err
			}
		}
		return &core.Command{
			Kind:     core.CommandCreateRoom,
			Password: create.Password,
		}, nil, nil
	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandJoinRoom,
			Room:     join.RoomID,
			Password: join.Password,
		}, nil, nil
	case proto.InboundTypeOffer, proto.InboundTypeAnswer, proto.InboundTypeICECandidate:
		var signal proto.SignalData
		if err := json.Unmarshal(inbound.Data, &signal); err != nil {
			return nil, nil, err
		}
		if signal.Target == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "target is required"}, nil
		}
		return &core.Command{
			Kind:    core.CommandRelaySignal,
			Target:  signal.Target,
			Signal:  signalKind(inbound.Type),
			Payload: signal.Payload,
		}, nil, nil
	case proto.InboundTypeSyncPlay, proto.InboundTypeSyncPause, proto.InboundTypeSyncStop:
		var sync proto.SyncData
		if err := json.Unmarshal(inbound.Data, &sync); err != nil {
			return nil, nil, err
		}
		if sync.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind:   core.CommandSyncPlayback,
			Room:   sync.RoomID,
			Action: syncAction(inbound.Type),
		}, nil, nil
	case proto.InboundTypeReset:
		var reset proto.ResetData
		if err := json.Unmarshal(inbound.Data, &reset); err != nil {
			return nil, nil, err
		}
		if reset.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandResetRoom,
			Room: reset.RoomID,
		}, nil, nil
	default:
		// Unknown types are ignored rather than closing the connection.
		return nil, nil, nil
	}
}

func signalKind(inboundType string) core.Signal {
	switch inboundType {
	case proto.InboundTypeOffer:
		return core.SignalOffer
	case proto.InboundTypeAnswer:
		return core.SignalAnswer
	default:
		return core.SignalCandidate
	}
}

func syncAction(inboundType string) core.SyncAction {
	switch inboundType {
	case proto.InboundTypeSyncPlay:
		return core.SyncPlay
	case proto.InboundTypeSyncPause:
		return core.SyncPause
	default:
		return core.SyncStop
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomCreated:
		return proto.Outbound{
			Type: proto.OutboundTypeRoomCreated,
			Data: proto.RoomCreatedData{RoomID: event.Room},
		}
	case core.EventRoomJoined:
		return proto.Outbound{
			Type: proto.OutboundTypeRoomJoined,
			Data: proto.RoomJoinedData{RoomID: event.Room, SenderID: event.Sender},
		}
	case core.EventViewerCount:
		return proto.Outbound{
			Type: proto.OutboundTypeViewerCount,
			Data: proto.ViewerCountData{RoomID: event.Room, Count: event.Count},
		}
	case core.EventSignal:
		return proto.Outbound{
			Type: string(event.Signal),
			Data: proto.SignalEvent{From: event.From, Payload: event.Payload},
		}
	case core.EventSync:
		return proto.Outbound{
			Type: syncOutboundType(event.Action),
			Data: proto.RoomEvent{RoomID: event.Room},
		}
	case core.EventReset:
		return proto.Outbound{
			Type: proto.OutboundTypeReset,
			Data: proto.RoomEvent{RoomID: event.Room},
		}
	case core.EventStreamEnded:
		return proto.Outbound{
			Type: proto.OutboundTypeStreamEnded,
			Data: proto.RoomEvent{RoomID: event.Room},
		}
	case core.EventError:
		return outboundFromError(event)
	default:
		return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown event"}}
	}
}

// outboundFromError maps the two domain errors to their own event types;
// anything else stays a generic error envelope.
func outboundFromError(event *core.Event) proto.Outbound {
	if event.Error == nil {
		return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
	}
	switch event.Error.Code {
	case core.ErrCodeRoomNotFound:
		return proto.Outbound{
			Type: proto.OutboundTypeRoomNotFound,
			Data: proto.RoomEvent{RoomID: event.Room},
		}
	case core.ErrCodeWrongPassword:
		return proto.Outbound{
			Type: proto.OutboundTypeWrongPassword,
			Data: proto.RoomEvent{RoomID: event.Room},
		}
	default:
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	}
}

func syncOutboundType(action core.SyncAction) string {
	switch action {
	case core.SyncPlay:
		return proto.InboundTypeSyncPlay
	case core.SyncPause:
		return proto.InboundTypeSyncPause
	default:
		return proto.InboundTypeSyncStop
	}
}
